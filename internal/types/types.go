package types

import (
	"fmt"
	"strings"
)

// CategoryID 定义机器类别 ID
// 使用字符串类型，方便在日志和配置中直接使用 (viper 会把配置 key 转为小写)
type CategoryID string

const (
	// 生产线上的三类机器
	CategoryAssembly        CategoryID = "assembly"         // 装配机：产线入口，决定整条产线的实际产能
	CategorySoldering       CategoryID = "soldering"        // 焊接机
	CategoryQualityChecking CategoryID = "quality_checking" // 质检机：产线出口
)

// Categories 按产线顺序返回所有类别
func Categories() []CategoryID {
	return []CategoryID{CategoryAssembly, CategorySoldering, CategoryQualityChecking}
}

// Tactic 定义下游工段的产能目标策略
type Tactic string

const (
	// TacticAllowOvershoot 下游工段以装配段实际分配出的产能为目标
	TacticAllowOvershoot Tactic = "ALLOW_OVERSHOOT"
	// TacticExact 下游工段以原始请求的产能为目标
	TacticExact Tactic = "EXACT"
)

// ParseTactic 解析配置或命令行中的策略名称，大小写不敏感
func ParseTactic(s string) (Tactic, error) {
	switch Tactic(strings.ToUpper(strings.TrimSpace(s))) {
	case TacticAllowOvershoot:
		return TacticAllowOvershoot, nil
	case TacticExact:
		return TacticExact, nil
	default:
		return "", fmt.Errorf("unknown tactic %q", s)
	}
}

// Strategy 定义价格匹配使用的搜索方式
type Strategy string

const (
	StrategyBisect     Strategy = "bisect"     // 在产能目标上二分，遇到停滞即结束
	StrategyExhaustive Strategy = "exhaustive" // 在价格下界允许的范围内逐个产能扫描
)

// ParseStrategy 解析搜索方式名称
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyBisect:
		return StrategyBisect, nil
	case StrategyExhaustive:
		return StrategyExhaustive, nil
	default:
		return "", fmt.Errorf("unknown search strategy %q", s)
	}
}

// Outcome 记录一次价格搜索结束的原因
type Outcome string

const (
	OutcomeExact     Outcome = "EXACT"     // 找到价格恰好等于目标的产线
	OutcomeStagnated Outcome = "STAGNATED" // 二分搜索不再有进展
	OutcomeExhausted Outcome = "EXHAUSTED" // 扫描完所有候选产能
	OutcomeCancelled Outcome = "CANCELLED" // 上下文被取消
)
