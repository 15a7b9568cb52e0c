package engine

import (
	"io"
	"log/slog"

	"production-line-planner/internal/event"
	"production-line-planner/internal/machine"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestAssembler(bus *event.Bus) *Assembler {
	return NewAssembler(machine.DefaultCatalog(), bus, newTestLogger())
}

func capacities(machines []machine.Machine) []int {
	out := make([]int, 0, len(machines))
	for _, m := range machines {
		out = append(out, m.Capacity())
	}
	return out
}

func prices(machines []machine.Machine) []int {
	out := make([]int, 0, len(machines))
	for _, m := range machines {
		out = append(out, m.Price())
	}
	return out
}
