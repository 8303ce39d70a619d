package collision

import (
	"github.com/golang/geo/r2"

	"github.com/lixenwraith/mazecar/component"
	"github.com/lixenwraith/mazecar/vmath"
)

// Arena bounces the car when a feeler leaves its bounds
type Arena struct {
	bounds r2.Rect
	env    *Env
}

// NewArena creates an arena over bounds
func NewArena(bounds r2.Rect, env *Env) *Arena {
	return &Arena{bounds: bounds, env: env}
}

func (a *Arena) Name() string {
	return "arena"
}

// Bounds returns the arena rectangle
func (a *Arena) Bounds() r2.Rect {
	return a.bounds
}

// Collide reports feelers outside the bounds; edges count as inside
func (a *Arena) Collide(car *component.Car) (left, right bool) {
	l, r := car.Feelers()
	return !vmath.Contains(a.bounds, l), !vmath.Contains(a.bounds, r)
}

// Bounce schedules a turn when a feeler is outside; no-op while the car is turning
func (a *Arena) Bounce(car *component.Car) bool {
	return bounce(a, a.env, car)
}
