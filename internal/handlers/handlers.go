package handlers

import (
	"log/slog"

	"production-line-planner/internal/event"
	"production-line-planner/internal/metrics"
)

// RegisterEventHandlers 将所有事件处理器注册到事件总线
// 引擎只负责发布事件，监控和审计日志在这里订阅
func RegisterEventHandlers(bus *event.Bus, logger *slog.Logger) {
	logger = logger.With("component", "handlers")

	// --- 指标处理器 (Metrics Handler) ---
	// 订阅产线分配事件，按策略计数
	bus.Subscribe(event.PipelineAssembled, func(e event.Event) {
		metrics.PipelinesAssembledTotal.WithLabelValues(string(e.Tactic)).Inc()
	})
	// 订阅搜索结束事件，记录结果和尝试次数
	bus.Subscribe(event.SearchFinished, func(e event.Event) {
		metrics.PriceSearchesTotal.WithLabelValues(string(e.Outcome), string(e.Strategy)).Inc()
		metrics.SearchIterations.Observe(float64(e.Iterations))
		metrics.QuotedPrice.Set(float64(e.Price))
	})

	// --- 日志处理器 (Logging Handler) ---
	bus.Subscribe(event.SearchFinished, func(e event.Event) {
		if e.Error != nil {
			logger.Warn("价格搜索提前结束", "search_id", e.SearchID, "outcome", e.Outcome, "error", e.Error)
			return
		}
		if e.Price == 0 {
			logger.Warn("没有不超过目标价格的产线", "search_id", e.SearchID, "target", e.Target)
			return
		}
		logger.Info("报价完成", "search_id", e.SearchID, "target", e.Target, "price", e.Price,
			"gap", e.Target-e.Price, "outcome", e.Outcome)
	})
}
