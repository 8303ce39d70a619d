package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Well-known metric keys written by the simulation
const (
	KeyTicks          = "sim.ticks"
	KeyBouncesArena   = "bounce.arena"
	KeyBouncesMaze    = "bounce.maze"
	KeyRotateRejected = "car.rotate_rejected"
	KeyObstacles      = "maze.obstacles"
	KeyHeading        = "car.heading"
	KeySpeed          = "car.speed"
	KeyIndicator      = "car.indicator"
	KeyPhase          = "car.phase"
)

// Registry is the central metrics facade
// Writers cache pointers during setup and store directly into the atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines formats every metric as "key=value", ints first, each group sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, k+"="+strconv.FormatInt(v.Load(), 10))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.1f", k, v.Load()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		lines = append(lines, k+"="+v.Load())
	})
	return lines
}
