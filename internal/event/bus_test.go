package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInOrder(t *testing.T) {
	bus := NewBus()
	var calls []string
	bus.Subscribe(SearchFinished, func(e Event) { calls = append(calls, "first:"+e.SearchID) })
	bus.Subscribe(SearchFinished, func(e Event) { calls = append(calls, "second:"+e.SearchID) })
	bus.Subscribe(SearchIteration, func(e Event) { calls = append(calls, "iteration") })

	bus.Publish(Event{Type: SearchFinished, SearchID: "s1"})

	// 处理器同步执行，Publish 返回时已全部调用
	assert.Equal(t, []string{"first:s1", "second:s1"}, calls)
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Publish(Event{Type: PipelineAssembled}) })

	var nilBus *Bus
	assert.NotPanics(t, func() { nilBus.Publish(Event{Type: PipelineAssembled}) })
}

func TestBus_SubscribeFromHandler(t *testing.T) {
	bus := NewBus()
	var calls []EventType
	bus.Subscribe(SearchIteration, func(e Event) {
		calls = append(calls, e.Type)
		// 处理器运行时不持有锁
		bus.Subscribe(SearchFinished, func(e Event) { calls = append(calls, e.Type) })
		bus.Publish(Event{Type: SearchFinished})
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(Event{Type: SearchIteration})
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish deadlocked")
	}
	assert.Equal(t, []EventType{SearchIteration, SearchFinished}, calls)
}
