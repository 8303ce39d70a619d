// Package collision decides when the car bounces: an Arena bounds test and a Maze of ordered
// obstacles both probe the car's feeler points and schedule the resulting turn
package collision

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/mazecar/component"
	"github.com/lixenwraith/mazecar/engine"
	"github.com/lixenwraith/mazecar/physics"
	"github.com/lixenwraith/mazecar/vmath"
)

// Source is a collision check that can trigger a bounce
type Source interface {
	Name() string
	// Collide reports which feelers hit, without side effects
	Collide(car *component.Car) (left, right bool)
	// Bounce checks the car and schedules a turn on a hit; returns whether it triggered
	Bounce(car *component.Car) bool
}

// BounceEvent describes one bounce from detection to application
type BounceEvent struct {
	Source      string
	Left, Right bool
	Angle       float64
	DetectedAt  time.Duration
}

// Observer is notified of bounce lifecycle events; err is non-nil if the rotation was rejected
type Observer interface {
	BounceDetected(ev BounceEvent)
	BounceApplied(ev BounceEvent, err error)
}

// Env is the shared machinery every Source schedules through
type Env struct {
	Scheduler    *engine.Scheduler
	Rule         physics.BounceRule
	Rng          *vmath.FastRand
	TurnDuration time.Duration
	Logger       zerolog.Logger
	Observer     Observer // optional
}

// BounceTask is the deferred rotation of one car, carrying the angle decided at detection
type BounceTask struct {
	Car      *component.Car
	Event    BounceEvent
	Duration time.Duration

	logger   zerolog.Logger
	observer Observer
}

// Run applies the rotation; a rejected rotation is logged and otherwise ignored
func (t *BounceTask) Run(now time.Duration) {
	err := t.Car.Rotate(t.Event.Angle, t.Duration)
	if err != nil {
		t.logger.Warn().Err(err).
			Str("source", t.Event.Source).
			Float64("angle", t.Event.Angle).
			Dur("at", now).
			Msg("bounce rotation rejected")
	} else {
		t.logger.Debug().
			Str("source", t.Event.Source).
			Float64("angle", t.Event.Angle).
			Float64("heading", t.Car.Heading()).
			Bool("forward", t.Car.MovingForward()).
			Msg("bounce applied")
	}
	if t.observer != nil {
		t.observer.BounceApplied(t.Event, err)
	}
}

// bounce is the common Source.Bounce: skip turning cars, probe, decide the angle now,
// hold the car and apply the rotation after the turn duration
func bounce(src Source, env *Env, car *component.Car) bool {
	if car.Turning() {
		return false
	}
	left, right := src.Collide(car)
	angle, ok := env.Rule.Decide(left, right, env.Rng)
	if !ok {
		return false
	}
	car.Hold()

	ev := BounceEvent{
		Source:     src.Name(),
		Left:       left,
		Right:      right,
		Angle:      angle,
		DetectedAt: env.Scheduler.Now(),
	}
	env.Scheduler.After(env.TurnDuration, &BounceTask{
		Car:      car,
		Event:    ev,
		Duration: env.TurnDuration,
		logger:   env.Logger,
		observer: env.Observer,
	})

	env.Logger.Debug().
		Str("source", ev.Source).
		Bool("left", left).
		Bool("right", right).
		Float64("angle", angle).
		Msg("bounce detected")
	if env.Observer != nil {
		env.Observer.BounceDetected(ev)
	}
	return true
}
