package engine

import (
	"log/slog"

	"production-line-planner/internal/event"
	"production-line-planner/internal/machine"
	"production-line-planner/internal/types"
)

// Assembler 负责把三类机器串成一条产线
type Assembler struct {
	catalog  machine.Catalog
	eventBus *event.Bus
	logger   *slog.Logger
}

// NewAssembler 创建一个新的 Assembler 实例
// catalog 需要事先通过 Validate 校验
func NewAssembler(catalog machine.Catalog, bus *event.Bus, logger *slog.Logger) *Assembler {
	return &Assembler{
		catalog:  catalog,
		eventBus: bus,
		logger:   logger.With("component", "assembler"),
	}
}

// Catalog 返回装配使用的机器常量表
func (a *Assembler) Catalog() machine.Catalog {
	return a.catalog
}

// Assemble 按产能目标分配一条产线，返回产线及其总价格
//
// 装配段总是以 goal 为目标。TacticExact 下焊接和质检也以 goal 为目标；
// TacticAllowOvershoot 下它们以装配段实际分配出的总产能为目标。
func (a *Assembler) Assemble(goal int, tactic types.Tactic) (Pipeline, int) {
	assembly := MatchCapacity(a.catalog.Assembly, goal)
	assembled := TotalCapacity(assembly)

	downstreamGoal := goal
	if tactic == types.TacticAllowOvershoot {
		downstreamGoal = assembled
	}

	pipe := Pipeline{
		Assembly:     assembly,
		Soldering:    MatchCapacity(a.catalog.Soldering, downstreamGoal),
		QualityCheck: MatchCapacity(a.catalog.QualityChecking, downstreamGoal),
	}
	price := pipe.Price()

	a.logger.Debug("产线分配完成",
		"goal", goal,
		"tactic", tactic,
		"assembly_capacity", assembled,
		"machines", len(pipe.Assembly)+len(pipe.Soldering)+len(pipe.QualityCheck),
		"price", price)
	a.eventBus.Publish(event.Event{
		Type:     event.PipelineAssembled,
		Tactic:   tactic,
		Goal:     goal,
		Capacity: assembled,
		Price:    price,
	})
	return pipe, price
}
