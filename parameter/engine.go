package parameter

import "time"

// Simulation loop & engine timing
const (
	// TickRate is the fixed simulation rate in Hz
	TickRate = 30

	// TickInterval is the duration of one simulation tick (~33ms)
	TickInterval = time.Second / TickRate

	// FrameUpdateInterval is the terminal redraw interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// StartDelay is the deferred start before the car is placed and ticking begins
	StartDelay = 1 * time.Second

	// ClockMaxCatchUp caps how much wall time one driver step may feed into the scheduler
	// Prevents a burst of ticks after the process was suspended
	ClockMaxCatchUp = 250 * time.Millisecond
)
