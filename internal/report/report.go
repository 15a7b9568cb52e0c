package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"production-line-planner/internal/engine"
	"production-line-planner/internal/machine"
	"production-line-planner/internal/types"
)

// MachineView 定义了用于输出的机器视图
type MachineView struct {
	Category types.CategoryID `json:"category" yaml:"category"`
	Capacity int              `json:"capacity" yaml:"capacity"`
	Price    int              `json:"price" yaml:"price"`
}

// StageView 定义了一个工段的汇总
type StageView struct {
	Category types.CategoryID `json:"category" yaml:"category"`
	Capacity int              `json:"capacity" yaml:"capacity"`
	Price    int              `json:"price" yaml:"price"`
	Machines []MachineView    `json:"machines" yaml:"machines"`
}

// QuoteView 是一次报价的完整输出
type QuoteView struct {
	SearchID   string        `json:"search_id" yaml:"search_id"`
	Target     int           `json:"target" yaml:"target"`
	Price      int           `json:"price" yaml:"price"`
	Iterations int           `json:"iterations" yaml:"iterations"`
	Outcome    types.Outcome `json:"outcome" yaml:"outcome"`
	Stages     []StageView   `json:"stages" yaml:"stages"`
}

// NewQuoteView 把搜索结果转换为输出视图，工段按产线顺序排列
func NewQuoteView(q engine.Quote) QuoteView {
	view := QuoteView{
		SearchID:   q.SearchID,
		Target:     q.Target,
		Price:      q.Price,
		Iterations: q.Iterations,
		Outcome:    q.Outcome,
		Stages:     make([]StageView, 0, 3),
	}
	for _, id := range types.Categories() {
		stage := q.Pipeline.Stage(id)
		view.Stages = append(view.Stages, StageView{
			Category: id,
			Capacity: engine.TotalCapacity(stage),
			Price:    engine.TotalPrice(stage),
			Machines: machineViews(stage),
		})
	}
	return view
}

func machineViews(machines []machine.Machine) []MachineView {
	views := make([]MachineView, 0, len(machines))
	for _, m := range machines {
		views = append(views, MachineView{Category: m.Category().Name, Capacity: m.Capacity(), Price: m.Price()})
	}
	return views
}

// Render 按格式输出报价: text, json 或 yaml
//
// text 格式第一行是总价，之后按 装配 -> 焊接 -> 质检 每行一台机器。
func Render(w io.Writer, format string, q engine.Quote) error {
	switch format {
	case "", "text":
		return renderText(w, q)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewQuoteView(q))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewQuoteView(q)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, q engine.Quote) error {
	if _, err := fmt.Fprintln(w, q.Price); err != nil {
		return err
	}
	for _, m := range q.Pipeline.Machines() {
		if _, err := fmt.Fprintln(w, m); err != nil {
			return err
		}
	}
	return nil
}
