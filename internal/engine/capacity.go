package engine

import (
	"production-line-planner/internal/machine"
)

// MatchCapacity 为一个类别分配台数最少、总产能不低于 goal 的机器
//
// 目标先被提升到 CapacityMin，然后分配 ceil(goal / CapacityMax) 台满产能机器，
// 再从前往后削减多出的产能，每台最多削减到 CapacityMin。
// 多分配的产能超过所有机器可削减的总量时，结果会高于 goal。
func MatchCapacity(category machine.Category, goal int) []machine.Machine {
	goal = max(goal, category.CapacityMin)

	count := (goal + category.CapacityMax - 1) / category.CapacityMax
	machines := make([]machine.Machine, count)
	for i := range machines {
		machines[i] = machine.Full(category)
	}

	excess := count*category.CapacityMax - goal
	for i := range machines {
		if excess == 0 {
			break
		}
		excess -= machines[i].Reduce(min(excess, category.Headroom()))
	}
	return machines
}

// TotalCapacity 返回一组机器的总产能
func TotalCapacity(machines []machine.Machine) int {
	total := 0
	for _, m := range machines {
		total += m.Capacity()
	}
	return total
}

// TotalPrice 返回一组机器的总价格
func TotalPrice(machines []machine.Machine) int {
	total := 0
	for _, m := range machines {
		total += m.Price()
	}
	return total
}

// minimumPrice 返回满足 goal 所需机器台数的基础价格之和
// 削减产能不会让价格低于这个值
func minimumPrice(category machine.Category, goal int) int {
	goal = max(goal, category.CapacityMin)
	count := (goal + category.CapacityMax - 1) / category.CapacityMax
	return count * category.CostBaseline
}

// PriceFloor 返回产能目标为 goal 的产线价格下界，不需要分配任何机器
// 装配段总以 goal 为目标，下游工段的目标不小于 goal，两种策略下都成立
func PriceFloor(catalog machine.Catalog, goal int) int {
	return minimumPrice(catalog.Assembly, goal) +
		minimumPrice(catalog.Soldering, goal) +
		minimumPrice(catalog.QualityChecking, goal)
}
