package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrBelowMinimumCapacity 请求的产能低于类别最小值
	ErrBelowMinimumCapacity = errors.New("capacity below category minimum")
	// ErrAboveMaximumCapacity 请求的产能高于类别最大值
	ErrAboveMaximumCapacity = errors.New("capacity above category maximum")
)

// Machine 表示产线上的一台机器
// 不变式：CapacityMin <= capacity <= CapacityMax，构造和削减产能后都成立
type Machine struct {
	category Category
	capacity int
}

// New 校验产能后创建一台机器
func New(category Category, capacity int) (Machine, error) {
	switch {
	case capacity < category.CapacityMin:
		return Machine{}, fmt.Errorf("%w: %s capacity %d < %d", ErrBelowMinimumCapacity, category.Name, capacity, category.CapacityMin)
	case capacity > category.CapacityMax:
		return Machine{}, fmt.Errorf("%w: %s capacity %d > %d", ErrAboveMaximumCapacity, category.Name, capacity, category.CapacityMax)
	}
	return Machine{category: category, capacity: capacity}, nil
}

// Full 创建一台满产能的机器，对合法类别不会失败
func Full(category Category) Machine {
	return Machine{category: category, capacity: category.CapacityMax}
}

func (m Machine) Category() Category { return m.category }

func (m Machine) Capacity() int { return m.capacity }

// Price 计算机器价格: baseline + step * (capacity - min)
func (m Machine) Price() int {
	return m.category.CostBaseline + m.category.CostStep*(m.capacity-m.category.CapacityMin)
}

// Reduce 削减至多 amount 的产能，但不会低于类别最小值
// 返回实际削减的数量
func (m *Machine) Reduce(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.capacity-m.category.CapacityMin)
	m.capacity -= actual
	return actual
}

// String 返回调试用的机器描述，CLI 逐行打印
func (m Machine) String() string {
	return fmt.Sprintf("Machine{category: %s, capacity: %d, price: %d}", m.category.Name, m.capacity, m.Price())
}
