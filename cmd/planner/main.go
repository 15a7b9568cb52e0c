package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"production-line-planner/internal/config"
	"production-line-planner/internal/engine"
	"production-line-planner/internal/event"
	"production-line-planner/internal/handlers"
	"production-line-planner/internal/report"
	"production-line-planner/internal/types"
)

// main 是应用程序的主入口
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run 加载配置，搜索报价并把结果写到 stdout
// 日志写到 stderr，stdout 只包含报价
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		return err
	}

	// 2. 初始化核心组件
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	eventBus := event.NewBus()
	handlers.RegisterEventHandlers(eventBus, logger)

	// 3. 初始化装配器和价格匹配器
	opts, err := searchOptions(cfg.Search)
	if err != nil {
		return err
	}
	assembler := engine.NewAssembler(cfg.Categories, eventBus, logger)
	matcher, err := engine.NewPriceMatcher(assembler, opts, eventBus, logger)
	if err != nil {
		logger.Error("初始化价格匹配器失败", "error", err)
		return err
	}

	// 4. 搜索并输出
	quote, err := matcher.MatchPrice(ctx, cfg.TargetPrice)
	if err != nil {
		logger.Error("价格搜索失败", "error", err)
		return err
	}
	return report.Render(stdout, cfg.Output, quote)
}

// searchOptions 把配置中的字符串转换为引擎参数
func searchOptions(c config.SearchConfig) (engine.SearchOptions, error) {
	strategy, err := types.ParseStrategy(c.Strategy)
	if err != nil {
		return engine.SearchOptions{}, err
	}
	tactic, err := types.ParseTactic(c.Tactic)
	if err != nil {
		return engine.SearchOptions{}, err
	}
	return engine.SearchOptions{
		Strategy:     strategy,
		Tactic:       tactic,
		InitialGuess: c.InitialGuess,
		MaxCapacity:  c.MaxCapacity,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
