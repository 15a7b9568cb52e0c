package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 定义 Prometheus 监控指标
var (
	// PipelinesAssembledTotal 计数器：分配的产线总数
	// 按下游工段策略分类
	PipelinesAssembledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_pipelines_assembled_total",
		Help: "The total number of assembled pipelines",
	}, []string{"tactic"})

	// PriceSearchesTotal 计数器：完成的价格搜索总数
	// 按结束原因和搜索方式分类
	PriceSearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_price_searches_total",
		Help: "The total number of finished price searches",
	}, []string{"outcome", "strategy"})

	// SearchIterations 直方图：每次价格搜索的尝试次数分布
	// 用于发现收敛很慢的目标价格
	SearchIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_search_iterations",
		Help:    "Number of pipeline assemblies per price search",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	// QuotedPrice 仪表盘：最近一次搜索得到的产线价格
	QuotedPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_quoted_price",
		Help: "Total price of the pipeline returned by the latest price search",
	})
)
