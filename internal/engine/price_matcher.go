package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"

	"production-line-planner/internal/event"
	"production-line-planner/internal/types"
	"production-line-planner/internal/util"
)

// ErrNegativeTarget 目标价格为负数
var ErrNegativeTarget = errors.New("target price must not be negative")

// MaxCapacityLimit 是 SearchOptions.MaxCapacity 允许的最大值
// 所有 cost_baseline 为 0 时价格下界无法剪枝，单次分配的机器数与产能成正比
const MaxCapacityLimit = 1 << 24

// SearchOptions 定义价格搜索的参数
type SearchOptions struct {
	Strategy     types.Strategy
	Tactic       types.Tactic
	InitialGuess string // expr 表达式，变量 target 为目标价格
	MaxCapacity  int    // 产能上界，同时是二分搜索的初始上界
}

// Quote 是一次价格搜索的结果
type Quote struct {
	SearchID   string
	Target     int
	Price      int
	Pipeline   Pipeline
	Iterations int
	Outcome    types.Outcome
}

// PriceMatcher 在产能目标上搜索总价不超过目标价格的最佳产线
type PriceMatcher struct {
	assembler *Assembler
	opts      SearchOptions
	guess     *vm.Program
	eventBus  *event.Bus
	logger    *slog.Logger
}

// NewPriceMatcher 创建一个新的 PriceMatcher 实例，并预编译初始猜测表达式
func NewPriceMatcher(assembler *Assembler, opts SearchOptions, bus *event.Bus, logger *slog.Logger) (*PriceMatcher, error) {
	if opts.MaxCapacity < 1 || opts.MaxCapacity > MaxCapacityLimit {
		return nil, fmt.Errorf("max capacity must be in [1, %d], got %d", MaxCapacityLimit, opts.MaxCapacity)
	}
	if opts.Strategy == "" {
		opts.Strategy = types.StrategyBisect
	}
	if opts.Tactic == "" {
		opts.Tactic = types.TacticExact
	}
	program, err := expr.Compile(opts.InitialGuess, expr.Env(guessEnv(0)))
	if err != nil {
		return nil, fmt.Errorf("initial guess compilation failed: %w", err)
	}
	return &PriceMatcher{
		assembler: assembler,
		opts:      opts,
		guess:     program,
		eventBus:  bus,
		logger:    logger.With("component", "price_matcher"),
	}, nil
}

func guessEnv(target int) map[string]interface{} {
	return map[string]interface{}{"target": target}
}

// initialGuess 计算初始产能猜测，并限制在 [0, MaxCapacity] 内
func (pm *PriceMatcher) initialGuess(target int) (int, error) {
	result, err := expr.Run(pm.guess, guessEnv(target))
	if err != nil {
		return 0, fmt.Errorf("initial guess execution failed: %w", err)
	}
	var guess int
	switch v := result.(type) {
	case int:
		guess = v
	case int64:
		guess = int(v)
	case float64:
		if math.IsNaN(v) {
			return 0, errors.New("initial guess is NaN")
		}
		guess = int(math.Max(math.Min(v, float64(pm.opts.MaxCapacity)), 0))
	default:
		return 0, fmt.Errorf("initial guess result is not a number: %T", result)
	}
	return max(0, min(guess, pm.opts.MaxCapacity)), nil
}

// MatchPrice 搜索总价最接近但不超过 target 的产线
//
// 找不到这样的产线时返回空产线，价格为 0。
// ctx 被取消时返回目前为止的最佳结果以及 ctx 的错误。
func (pm *PriceMatcher) MatchPrice(ctx context.Context, target int) (Quote, error) {
	searchID, ok := util.SearchIDFromContext(ctx)
	if !ok {
		searchID = util.NewSearchID()
	}
	logger := pm.logger.With("search_id", searchID, "target", target, "strategy", pm.opts.Strategy)

	if target < 0 {
		return Quote{SearchID: searchID, Target: target}, fmt.Errorf("%w: %d", ErrNegativeTarget, target)
	}

	logger.Info("开始价格搜索")
	var (
		quote Quote
		err   error
	)
	switch pm.opts.Strategy {
	case types.StrategyExhaustive:
		quote, err = pm.scan(ctx, target, searchID, logger)
	default:
		quote, err = pm.bisect(ctx, target, searchID, logger)
	}

	pm.eventBus.Publish(event.Event{
		Type:       event.SearchFinished,
		SearchID:   searchID,
		Tactic:     pm.opts.Tactic,
		Strategy:   pm.opts.Strategy,
		Price:      quote.Price,
		Target:     target,
		Iterations: quote.Iterations,
		Outcome:    quote.Outcome,
		Error:      err,
	})
	logger.Info("价格搜索结束", "price", quote.Price, "iterations", quote.Iterations, "outcome", quote.Outcome)
	return quote, err
}

// bisect 在产能目标上二分
//
// 价格随产能只是近似单调，所以这只是启发式搜索：
// 本次结果与当前最佳结果相同，或者猜测值没有变化时，认为搜索停滞并结束。
// 价格下界已超过目标的猜测不分配机器，直接收紧上界。
func (pm *PriceMatcher) bisect(ctx context.Context, target int, searchID string, logger *slog.Logger) (Quote, error) {
	best := Quote{SearchID: searchID, Target: target}

	guess, err := pm.initialGuess(target)
	if err != nil {
		return best, err
	}
	lower, higher := 1, pm.opts.MaxCapacity
	previous := -1

	for {
		if err := ctx.Err(); err != nil {
			best.Outcome = types.OutcomeCancelled
			return best, err
		}
		best.Iterations++

		pipe, price, assembled := pm.tryGoal(guess, target)
		pm.publishIteration(searchID, target, guess, price, lower, higher, best.Iterations)
		logger.Debug("搜索尝试", "guess", guess, "price", price, "assembled", assembled, "lower", lower, "higher", higher)

		if (assembled && price == best.Price && pipe.Equal(best.Pipeline)) || guess == previous {
			best.Outcome = types.OutcomeStagnated
			return best, nil
		}
		previous = guess

		switch {
		case price > target:
			higher = guess
		case price < target:
			lower = guess
			best.Pipeline, best.Price = pipe, price
		default:
			best.Pipeline, best.Price = pipe, price
			best.Outcome = types.OutcomeExact
			return best, nil
		}
		guess = lower + (higher-lower)/2
	}
}

// tryGoal 分配产能目标为 goal 的产线
// 价格下界超过目标时跳过分配，返回下界和 false
func (pm *PriceMatcher) tryGoal(goal, target int) (Pipeline, int, bool) {
	if floor := PriceFloor(pm.assembler.Catalog(), goal); floor > target {
		return Pipeline{}, floor, false
	}
	pipe, price := pm.assembler.Assemble(goal, pm.opts.Tactic)
	return pipe, price, true
}

// scan 从产能 0 开始逐个尝试，直到基础价格下界超过目标价格或达到产能上界
//
// 所有 cost_baseline 都为 0 时下界恒为 0，扫描会走完 MaxCapacity 个目标，
// 每次分配的机器数与产能成正比，只能靠 MaxCapacity 或 ctx 限制耗时。
func (pm *PriceMatcher) scan(ctx context.Context, target int, searchID string, logger *slog.Logger) (Quote, error) {
	best := Quote{SearchID: searchID, Target: target, Outcome: types.OutcomeExhausted}
	catalog := pm.assembler.Catalog()
	if catalog.Assembly.CostBaseline == 0 && catalog.Soldering.CostBaseline == 0 && catalog.QualityChecking.CostBaseline == 0 {
		logger.Warn("所有类别的基础价格为 0，扫描无法剪枝", "max_capacity", pm.opts.MaxCapacity)
	}

	for goal := 0; goal <= pm.opts.MaxCapacity; goal++ {
		if err := ctx.Err(); err != nil {
			best.Outcome = types.OutcomeCancelled
			return best, err
		}
		if PriceFloor(catalog, goal) > target {
			break
		}
		best.Iterations++

		pipe, price := pm.assembler.Assemble(goal, pm.opts.Tactic)
		pm.publishIteration(searchID, target, goal, price, 0, pm.opts.MaxCapacity, best.Iterations)
		if price > target {
			continue
		}
		if !best.Pipeline.Empty() && price <= best.Price {
			continue
		}
		best.Pipeline, best.Price = pipe, price
		logger.Debug("更优的产线", "goal", goal, "price", price)
		if price == target {
			best.Outcome = types.OutcomeExact
			return best, nil
		}
	}
	return best, nil
}

func (pm *PriceMatcher) publishIteration(searchID string, target, guess, price, lower, higher, iterations int) {
	pm.eventBus.Publish(event.Event{
		Type:       event.SearchIteration,
		SearchID:   searchID,
		Tactic:     pm.opts.Tactic,
		Goal:       guess,
		Price:      price,
		Target:     target,
		Lower:      lower,
		Higher:     higher,
		Iterations: iterations,
	})
}
