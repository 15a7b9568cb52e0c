package engine

import (
	"slices"

	"production-line-planner/internal/machine"
	"production-line-planner/internal/types"
)

// Pipeline 表示一条完整分配的产线
// 由 Assembler 创建，返回后不再修改
type Pipeline struct {
	Assembly     []machine.Machine
	Soldering    []machine.Machine
	QualityCheck []machine.Machine
}

// Price 返回产线上所有机器的价格之和
func (p Pipeline) Price() int {
	return TotalPrice(p.Assembly) + TotalPrice(p.Soldering) + TotalPrice(p.QualityCheck)
}

// Stage 返回某个类别对应的工段
func (p Pipeline) Stage(id types.CategoryID) []machine.Machine {
	switch id {
	case types.CategoryAssembly:
		return p.Assembly
	case types.CategorySoldering:
		return p.Soldering
	case types.CategoryQualityChecking:
		return p.QualityCheck
	default:
		return nil
	}
}

// Machines 按 装配 -> 焊接 -> 质检 的顺序返回所有机器
func (p Pipeline) Machines() []machine.Machine {
	all := make([]machine.Machine, 0, len(p.Assembly)+len(p.Soldering)+len(p.QualityCheck))
	all = append(all, p.Assembly...)
	all = append(all, p.Soldering...)
	return append(all, p.QualityCheck...)
}

func (p Pipeline) Empty() bool {
	return len(p.Assembly) == 0 && len(p.Soldering) == 0 && len(p.QualityCheck) == 0
}

// Equal 逐台比较两条产线
func (p Pipeline) Equal(other Pipeline) bool {
	return slices.Equal(p.Assembly, other.Assembly) &&
		slices.Equal(p.Soldering, other.Soldering) &&
		slices.Equal(p.QualityCheck, other.QualityCheck)
}
