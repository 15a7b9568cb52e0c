package event

import (
	"sync"

	"production-line-planner/internal/types"
)

// EventType 定义事件的类型
type EventType string

// 定义所有规划事件类型
const (
	PipelineAssembled EventType = "PipelineAssembled" // 一条产线分配完成
	SearchIteration   EventType = "SearchIteration"   // 价格搜索完成一次尝试
	SearchFinished    EventType = "SearchFinished"    // 价格搜索结束
)

// Event 结构体定义了事件的数据负载
// 不同事件类型只会填充其中一部分字段
type Event struct {
	Type       EventType
	SearchID   string         // 关联的搜索 ID (仅搜索相关事件)
	Tactic     types.Tactic   // 下游工段策略
	Strategy   types.Strategy // 搜索方式 (仅 SearchFinished)
	Goal       int            // 请求的产能目标
	Capacity   int            // 装配段实际产能
	Price      int            // 本次产线价格，或搜索结果价格
	Target     int            // 目标价格 (仅搜索相关事件)
	Lower      int            // 二分下界 (仅 SearchIteration)
	Higher     int            // 二分上界 (仅 SearchIteration)
	Iterations int            // 已进行的尝试次数
	Outcome    types.Outcome  // 结束原因 (仅 SearchFinished)
	Error      error
}

// Handler 是事件处理函数的签名
type Handler func(e Event)

// Bus 是一个简单的内存事件总线
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler // 存储事件类型到多个处理函数的映射
}

// NewBus 创建一个新的事件总线实例
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe 订阅一个特定类型的事件
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish 发布一个事件，在调用方的 goroutine 上按订阅顺序同步调用所有处理器
// 调用处理器时不持有锁，处理器里可以再次 Subscribe 或 Publish
// 锁只保护 handlers 映射，防止 Subscribe 与 Publish 并发
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := b.handlers[e.Type]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(e)
	}
}
