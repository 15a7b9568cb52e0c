package machine

import (
	"fmt"

	"production-line-planner/internal/types"
)

// Category 定义一类机器的产能范围和线性成本
// 使用 mapstructure 标签来映射配置文件中的字段
type Category struct {
	Name         types.CategoryID `mapstructure:"name"`          // 类别 ID
	CostStep     int              `mapstructure:"cost_step"`     // 产能每高出最小值一个单位增加的价格
	CostBaseline int              `mapstructure:"cost_baseline"` // 最小产能时的价格
	CapacityMax  int              `mapstructure:"capacity_max"`  // 单台机器最大产能
	CapacityMin  int              `mapstructure:"capacity_min"`  // 单台机器最小产能
}

// Validate 检查类别常量是否自洽
func (c Category) Validate() error {
	if c.CapacityMin < 1 {
		return fmt.Errorf("category %s: capacity_min must be >= 1, got %d", c.Name, c.CapacityMin)
	}
	if c.CapacityMin > c.CapacityMax {
		return fmt.Errorf("category %s: capacity_min (%d) exceeds capacity_max (%d)", c.Name, c.CapacityMin, c.CapacityMax)
	}
	if c.CostStep < 0 {
		return fmt.Errorf("category %s: cost_step must be >= 0, got %d", c.Name, c.CostStep)
	}
	if c.CostBaseline < 0 {
		return fmt.Errorf("category %s: cost_baseline must be >= 0, got %d", c.Name, c.CostBaseline)
	}
	return nil
}

// Headroom 返回单台机器可被削减的最大产能
func (c Category) Headroom() int {
	return c.CapacityMax - c.CapacityMin
}

// Catalog 是三类机器常量表的集合，按产线顺序排列
type Catalog struct {
	Assembly        Category `mapstructure:"assembly"`
	Soldering       Category `mapstructure:"soldering"`
	QualityChecking Category `mapstructure:"quality_checking"`
}

// DefaultCatalog 返回内置的机器常量表
func DefaultCatalog() Catalog {
	return Catalog{
		Assembly: Category{
			Name:         types.CategoryAssembly,
			CostStep:     200,
			CostBaseline: 5000,
			CapacityMax:  15,
			CapacityMin:  10,
		},
		Soldering: Category{
			Name:         types.CategorySoldering,
			CostStep:     50,
			CostBaseline: 2000,
			CapacityMax:  30,
			CapacityMin:  20,
		},
		QualityChecking: Category{
			Name:         types.CategoryQualityChecking,
			CostStep:     2000,
			CostBaseline: 8000,
			CapacityMax:  10,
			CapacityMin:  8,
		},
	}
}

// Get 按类别 ID 查找常量表
func (c Catalog) Get(id types.CategoryID) (Category, bool) {
	switch id {
	case types.CategoryAssembly:
		return c.Assembly, true
	case types.CategorySoldering:
		return c.Soldering, true
	case types.CategoryQualityChecking:
		return c.QualityChecking, true
	default:
		return Category{}, false
	}
}

// Validate 检查所有类别
func (c Catalog) Validate() error {
	for _, id := range types.Categories() {
		cat, _ := c.Get(id)
		if cat.Name != id {
			return fmt.Errorf("category %s: name mismatch %q", id, cat.Name)
		}
		if err := cat.Validate(); err != nil {
			return err
		}
	}
	return nil
}
