package engine

import (
	"time"

	"github.com/lixenwraith/mazecar/vmath"
)

// Easing maps linear progress t in [0,1] to eased progress
type Easing func(t float64) float64

// Linear is the identity easing
func Linear(t float64) float64 { return t }

// EaseInOutQuad accelerates through the first half and decelerates through the second
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// Tween interpolates a scalar from From to To over Duration
// It is sampled explicitly via Step; apply receives every sampled value and
// the completion callback fires exactly once, after the final value is applied
type Tween struct {
	From, To float64
	Duration time.Duration
	Ease     Easing

	elapsed    time.Duration
	apply      func(float64)
	onComplete func()
	done       bool
}

// NewTween creates a linear tween; apply may be nil
func NewTween(from, to float64, d time.Duration, apply func(float64)) *Tween {
	return &Tween{
		From:     from,
		To:       to,
		Duration: d,
		Ease:     Linear,
		apply:    apply,
	}
}

// OnComplete registers the completion side effect
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Step advances the tween by dt, applies the new value and reports completion
// Stepping a finished tween is a no-op returning true
func (t *Tween) Step(dt time.Duration) bool {
	if t.done {
		return true
	}
	t.elapsed += dt
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		t.elapsed = t.Duration
		t.done = true
	}
	if t.apply != nil {
		t.apply(t.Value())
	}
	if t.done && t.onComplete != nil {
		t.onComplete()
	}
	return t.done
}

// Progress returns linear progress in [0,1]
func (t *Tween) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return vmath.Clamp01(float64(t.elapsed) / float64(t.Duration))
}

// Value returns the current interpolated value
func (t *Tween) Value() float64 {
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return vmath.Lerp(t.From, t.To, ease(t.Progress()))
}

// Done reports whether the tween has reached its end value
func (t *Tween) Done() bool {
	return t.done
}

// Elapsed returns the sampled time so far
func (t *Tween) Elapsed() time.Duration {
	return t.elapsed
}

// Leg is one segment of a Chain: animate to To over Duration
type Leg struct {
	To       float64
	Duration time.Duration
}

// Chain plays legs back to back, each starting from the value the previous leg ended on
// With Repeat set it restarts from the first leg forever
type Chain struct {
	Legs   []Leg
	Repeat bool

	value   float64
	index   int
	current *Tween
	apply   func(float64)
}

// NewChain creates a chain starting at from
func NewChain(from float64, repeat bool, apply func(float64), legs ...Leg) *Chain {
	var total time.Duration
	for _, l := range legs {
		total += l.Duration
	}
	c := &Chain{
		Legs:   legs,
		Repeat: repeat && total > 0,
		value:  from,
		apply:  apply,
	}
	c.startLeg()
	return c
}

// Step advances the chain by dt; carries leftover time into the next leg
// Returns true once a non-repeating chain has finished
func (c *Chain) Step(dt time.Duration) bool {
	for c.current != nil {
		remaining := c.current.Duration - c.current.Elapsed()
		if dt < remaining {
			c.current.Step(dt)
			return false
		}
		c.current.Step(remaining)
		dt -= remaining

		c.index++
		if c.index >= len(c.Legs) {
			if !c.Repeat {
				c.current = nil
				return true
			}
			c.index = 0
		}
		c.startLeg()

		if dt == 0 {
			return false
		}
	}
	return true
}

// Value returns the chain's current value
func (c *Chain) Value() float64 {
	return c.value
}

func (c *Chain) startLeg() {
	if len(c.Legs) == 0 {
		c.current = nil
		return
	}
	leg := c.Legs[c.index]
	c.current = NewTween(c.value, leg.To, leg.Duration, func(v float64) {
		c.value = v
		if c.apply != nil {
			c.apply(v)
		}
	})
}
