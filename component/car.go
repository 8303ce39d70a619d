package component

import (
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazecar/engine"
	"github.com/lixenwraith/mazecar/vmath"
)

// Indicator is the last motion or bounce direction, used only for display
type Indicator uint8

const (
	IndicatorNone Indicator = iota
	IndicatorLeft
	IndicatorRight
	IndicatorForward
	IndicatorBackward
)

func (i Indicator) String() string {
	switch i {
	case IndicatorLeft:
		return "left"
	case IndicatorRight:
		return "right"
	case IndicatorForward:
		return "forward"
	case IndicatorBackward:
		return "backward"
	default:
		return "none"
	}
}

// TurnPhase tracks the turning state machine
// Idle -> Pending (bounce detected, rotation scheduled) -> Animating (heading tween) -> Idle
type TurnPhase uint8

const (
	TurnIdle TurnPhase = iota
	TurnPending
	TurnAnimating
)

func (p TurnPhase) String() string {
	switch p {
	case TurnPending:
		return "pending"
	case TurnAnimating:
		return "animating"
	default:
		return "idle"
	}
}

// ErrAlreadyTurning is returned by Rotate while a heading animation is in flight
var ErrAlreadyTurning = errors.New("car is already animating a turn")

// Car is the moving sprite: an axis-aligned box with a heading used for feeler probing
// Position is the bottom-left corner in y-up world units; velocity is a per-tick displacement
// Not safe for concurrent use
type Car struct {
	pos      r2.Point
	size     r2.Point
	velocity r2.Point
	heading  float64

	forward   bool
	phase     TurnPhase
	indicator Indicator
	turn      *engine.Tween
}

// NewCar creates an idle car of the given size at the origin, moving forward
func NewCar(width, height float64) *Car {
	return &Car{
		size:    r2.Point{X: width, Y: height},
		forward: true,
	}
}

func (c *Car) Position() r2.Point {
	return c.pos
}

func (c *Car) SetPosition(p r2.Point) {
	c.pos = p
}

func (c *Car) Size() r2.Point {
	return c.size
}

func (c *Car) Velocity() r2.Point {
	return c.velocity
}

func (c *Car) SetVelocity(v r2.Point) {
	c.velocity = v
}

func (c *Car) Heading() float64 {
	return c.heading
}

// SetHeading sets the orientation directly; an active heading animation keeps overwriting it
func (c *Car) SetHeading(deg float64) {
	c.heading = deg
}

func (c *Car) MovingForward() bool {
	return c.forward
}

func (c *Car) Phase() TurnPhase {
	return c.phase
}

func (c *Car) Indicator() Indicator {
	return c.indicator
}

func (c *Car) SetIndicator(i Indicator) {
	c.indicator = i
}

// Turning reports whether movement and collision checks are suspended
func (c *Car) Turning() bool {
	return c.phase != TurnIdle
}

// Speed returns the per-tick displacement length
func (c *Car) Speed() float64 {
	return vmath.Magnitude(c.velocity)
}

// Center returns the midpoint of the car's box
func (c *Car) Center() r2.Point {
	return r2.Point{X: c.pos.X + c.size.X/2, Y: c.pos.Y + c.size.Y/2}
}

// SetCenter moves the car so its box is centered on p
func (c *Car) SetCenter(p r2.Point) {
	c.pos = r2.Point{X: p.X - c.size.X/2, Y: p.Y - c.size.Y/2}
}

// Box returns the unrotated bounding box
func (c *Car) Box() r2.Rect {
	return vmath.RectFromOrigin(c.pos, c.size.X, c.size.Y)
}

// Feelers returns the probe points used for collision tests in world coordinates:
// left is the bottom-left corner, right the top-left corner, both rotated about the center by the heading
func (c *Car) Feelers() (left, right r2.Point) {
	center := c.Center()
	left = vmath.RotateAbout(c.pos, center, c.heading)
	right = vmath.RotateAbout(r2.Point{X: c.pos.X, Y: c.pos.Y + c.size.Y}, center, c.heading)
	return left, right
}

// Advance moves the car one tick along its velocity, backwards when not moving forward
// No-op while turning; returns whether the position changed
func (c *Car) Advance() bool {
	if c.Turning() {
		return false
	}
	if c.forward {
		c.pos = c.pos.Add(c.velocity)
	} else {
		c.pos = c.pos.Sub(c.velocity)
	}
	return true
}

// Hold suspends movement while a bounce is pending
// Returns false if the car was already turning
func (c *Car) Hold() bool {
	if c.Turning() {
		return false
	}
	c.phase = TurnPending
	return true
}

// ToggleDirection flips the forward/backward sense
func (c *Car) ToggleDirection() {
	c.forward = !c.forward
}

// Rotate applies a bounce: velocity is rotated by angle degrees, the direction sense flips,
// and the heading animates to heading+angle over d; the car stays turning until the
// animation completes. Position and velocity are not touched by the animation
func (c *Car) Rotate(angle float64, d time.Duration) error {
	if c.phase == TurnAnimating {
		return ErrAlreadyTurning
	}
	c.phase = TurnAnimating
	c.velocity = vmath.Rotate(c.velocity, angle)
	c.ToggleDirection()
	if angle > 0 {
		c.indicator = IndicatorLeft
	} else {
		c.indicator = IndicatorRight
	}

	c.turn = engine.NewTween(c.heading, c.heading+angle, d, func(v float64) {
		c.heading = v
	}).OnComplete(func() {
		c.phase = TurnIdle
		c.turn = nil
	})
	return nil
}

// StepTurn samples the heading animation; no-op when no animation is active
func (c *Car) StepTurn(dt time.Duration) {
	if c.turn != nil {
		c.turn.Step(dt)
	}
}

// TurnProgress returns progress of the active heading animation, 0 when none
func (c *Car) TurnProgress() float64 {
	if c.turn == nil {
		return 0
	}
	return c.turn.Progress()
}
