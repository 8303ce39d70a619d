package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/mazecar/core"
)

// Stepper receives elapsed wall time; implemented by the simulation
type Stepper interface {
	Step(dt time.Duration)
}

// Clock drives a Stepper from wall-clock time on a fixed poll interval
// Elapsed time is measured with a TimeSource and capped per step so a suspended
// process does not replay a burst of ticks on resume
type Clock struct {
	source   TimeSource
	target   Stepper
	interval time.Duration
	maxStep  time.Duration

	last   time.Time
	paused atomic.Bool

	mu       sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	steps atomic.Uint64
}

// NewClock creates a driver polling every interval, feeding at most maxStep per poll
func NewClock(source TimeSource, target Stepper, interval, maxStep time.Duration) *Clock {
	if maxStep < interval {
		maxStep = interval
	}
	return &Clock{
		source:   source,
		target:   target,
		interval: interval,
		maxStep:  maxStep,
		stopChan: make(chan struct{}),
	}
}

// Start begins the driver loop in its own goroutine
func (c *Clock) Start() {
	if c.running.CompareAndSwap(false, true) {
		c.mu.Lock()
		c.last = c.source.Now()
		c.mu.Unlock()

		c.wg.Add(1)
		core.Go(c.loop)
	}
}

// Stop halts the driver loop and waits for it to exit
func (c *Clock) Stop() {
	c.stopOnce.Do(func() {
		if c.running.CompareAndSwap(true, false) {
			close(c.stopChan)
			c.wg.Wait()
		}
	})
}

// Pause freezes simulated time; wall time spent paused is discarded
func (c *Clock) Pause() {
	c.paused.Store(true)
}

// Resume continues after Pause without replaying the paused interval
func (c *Clock) Resume() {
	if c.paused.CompareAndSwap(true, false) {
		c.mu.Lock()
		c.last = c.source.Now()
		c.mu.Unlock()
	}
}

// TogglePause flips the pause state and returns the new state
func (c *Clock) TogglePause() bool {
	if c.paused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused returns current pause state
func (c *Clock) IsPaused() bool {
	return c.paused.Load()
}

// Steps returns how many non-empty steps were fed to the target
func (c *Clock) Steps() uint64 {
	return c.steps.Load()
}

// Poll measures elapsed time since the last poll and feeds it to the target
// Exposed so tests and alternative loops can drive the clock synchronously
func (c *Clock) Poll() {
	if c.paused.Load() {
		return
	}

	c.mu.Lock()
	now := c.source.Now()
	dt := now.Sub(c.last)
	c.last = now
	c.mu.Unlock()

	if dt <= 0 {
		return
	}
	if dt > c.maxStep {
		dt = c.maxStep
	}
	c.target.Step(dt)
	c.steps.Add(1)
}

func (c *Clock) loop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.Poll()
		}
	}
}
