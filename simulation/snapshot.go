package simulation

import (
	"time"

	"github.com/golang/geo/r2"

	"github.com/lixenwraith/mazecar/component"
)

// ObstacleView is one layout cell as seen by a renderer
type ObstacleView struct {
	Rect     r2.Rect
	Passable bool
	Token    string
}

// Snapshot is a copy of the drawable state at one instant
type Snapshot struct {
	Time    time.Duration
	Running bool
	Arena   r2.Rect

	Car         r2.Rect
	Center      r2.Point
	Heading     float64
	HeadAngle   float64
	Forward     bool
	Indicator   component.Indicator
	Phase       component.TurnPhase
	LeftFeeler  r2.Point
	RightFeeler r2.Point

	// Obstacles is shared between snapshots and must not be modified
	Obstacles []ObstacleView
}

// Snapshot captures the current state under the simulation lock
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	left, right := s.car.Feelers()
	return Snapshot{
		Time:        s.sched.Now(),
		Running:     s.tickID != 0,
		Arena:       s.arena.Bounds(),
		Car:         s.car.Box(),
		Center:      s.car.Center(),
		Heading:     s.car.Heading(),
		HeadAngle:   s.headAngle,
		Forward:     s.car.MovingForward(),
		Indicator:   s.car.Indicator(),
		Phase:       s.car.Phase(),
		LeftFeeler:  left,
		RightFeeler: right,
		Obstacles:   s.cells,
	}
}
