package simulation

import (
	"context"

	"github.com/lixenwraith/mazecar/collision"
)

// observer is the Simulation viewed as a collision.Observer
// Callbacks arrive from inside Advance, so the lock is already held
type observer Simulation

func (o *observer) BounceDetected(ev collision.BounceEvent) {
	s := (*Simulation)(o)
	s.reg.Ints.Get("bounce." + ev.Source).Add(1)
	if s.meter != nil {
		s.meter.Bounce(context.Background(), ev.Source)
	}
	s.logger.Info().
		Str("source", ev.Source).
		Bool("left", ev.Left).
		Bool("right", ev.Right).
		Float64("angle", ev.Angle).
		Dur("at", ev.DetectedAt).
		Msg("bounce")
}

func (o *observer) BounceApplied(ev collision.BounceEvent, err error) {
	s := (*Simulation)(o)
	if err != nil {
		s.statRejected.Add(1)
		if s.meter != nil {
			s.meter.Rejected(context.Background())
		}
		return
	}
	for _, fn := range s.onBounce {
		fn(ev)
	}
}
