// Package simulation owns the car, arena and maze and drives them from a virtual-time scheduler
// Headless runs and the interactive host both feed time in through Step
package simulation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/mazecar/collision"
	"github.com/lixenwraith/mazecar/component"
	"github.com/lixenwraith/mazecar/config"
	"github.com/lixenwraith/mazecar/engine"
	"github.com/lixenwraith/mazecar/maze"
	"github.com/lixenwraith/mazecar/parameter"
	"github.com/lixenwraith/mazecar/status"
	"github.com/lixenwraith/mazecar/telemetry"
	"github.com/lixenwraith/mazecar/vmath"
)

// Deps are the optional collaborators; zero values are replaced with working defaults
type Deps struct {
	Logger zerolog.Logger
	Status *status.Registry
	Meter  *telemetry.Meter
	// Layout overrides the configured layout file and generator
	Layout *maze.Layout
}

// Simulation is safe for concurrent use: every exported method takes the same lock
type Simulation struct {
	mu sync.Mutex

	cfg    *config.Config
	runID  string
	logger zerolog.Logger
	meter  *telemetry.Meter

	sched  *engine.Scheduler
	car    *component.Car
	arena  *collision.Arena
	maze   *collision.Maze
	layout maze.Layout

	head      *engine.Chain
	headAngle float64

	started bool
	tickID  engine.TaskID
	cells   []ObstacleView

	onBounce []func(collision.BounceEvent)

	// Cached status pointers
	statTicks     *atomic.Int64
	statRejected  *atomic.Int64
	statObstacles *atomic.Int64
	statHeading   *status.AtomicFloat
	statSpeed     *status.AtomicFloat
	statIndicator *status.AtomicString
	statPhase     *status.AtomicString
	reg           *status.Registry
}

// New resolves the layout and wires the collision sources; nothing moves until Start
// Layout errors are returned here so a bad file fails before any time passes
func New(cfg *config.Config, deps Deps) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := resolveLayout(cfg, deps.Layout)
	if err != nil {
		return nil, err
	}

	reg := deps.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	runID := uuid.NewString()
	s := &Simulation{
		cfg:    cfg,
		runID:  runID,
		logger: deps.Logger.With().Str("run", runID).Logger(),
		meter:  deps.Meter,
		sched:  engine.NewScheduler(),
		car:    component.NewCar(cfg.Car.Width, cfg.Car.Height),
		layout: layout,
		reg:    reg,

		statTicks:     reg.Ints.Get(status.KeyTicks),
		statRejected:  reg.Ints.Get(status.KeyRotateRejected),
		statObstacles: reg.Ints.Get(status.KeyObstacles),
		statHeading:   reg.Floats.Get(status.KeyHeading),
		statSpeed:     reg.Floats.Get(status.KeySpeed),
		statIndicator: reg.Strings.Get(status.KeyIndicator),
		statPhase:     reg.Strings.Get(status.KeyPhase),
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	env := &collision.Env{
		Scheduler:    s.sched,
		Rule:         cfg.Bounce.Rule(),
		Rng:          vmath.NewFastRand(seed),
		TurnDuration: cfg.Sim.TurnDuration,
		Logger:       s.logger,
		Observer:     (*observer)(s),
	}
	bounds := r2.RectFromPoints(r2.Point{}, r2.Point{X: cfg.Arena.Width, Y: cfg.Arena.Height})
	s.arena = collision.NewArena(bounds, env)
	s.maze = collision.NewMaze(bounds, env)

	// Source counters exist from the start so the status bar shows zeros
	reg.Ints.Get(status.KeyBouncesArena)
	reg.Ints.Get(status.KeyBouncesMaze)
	s.publish()

	s.logger.Info().
		Uint64("seed", seed).
		Int("rows", layout.Rows()).
		Int("cols", layout.Cols()).
		Int("blocking", layout.BlockingCount()).
		Msg("simulation created")
	return s, nil
}

func resolveLayout(cfg *config.Config, override *maze.Layout) (maze.Layout, error) {
	if override != nil {
		return *override, nil
	}
	if cfg.Maze.Layout != "" {
		l, err := maze.LoadFile(cfg.Maze.Layout)
		if err != nil {
			return maze.Layout{}, errors.Wrap(err, "loading maze layout")
		}
		return l, nil
	}
	return maze.Generate(maze.GenConfig{
		Cols:     cfg.Maze.Cols,
		Rows:     cfg.Maze.Rows,
		Braiding: cfg.Maze.Braiding,
		Seed:     int64(cfg.Sim.Seed),
	}), nil
}

// RunID identifies this run in logs
func (s *Simulation) RunID() string {
	return s.runID
}

// Status returns the registry the simulation writes to
func (s *Simulation) Status() *status.Registry {
	return s.reg
}

// OnBounce registers fn to run after each applied bounce, inside the simulation lock
func (s *Simulation) OnBounce(fn func(collision.BounceEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBounce = append(s.onBounce, fn)
}

// Start schedules the deferred setup; later calls are ignored
func (s *Simulation) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.sched.After(s.cfg.Sim.StartDelay, engine.TaskFunc(s.setup))
}

// Stop cancels the periodic tick; pending bounce tasks are left to drain
func (s *Simulation) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tickID != 0 {
		s.sched.Cancel(s.tickID)
		s.tickID = 0
	}
}

// Running reports whether setup has completed and ticks are registered
func (s *Simulation) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickID != 0
}

// setup runs once, StartDelay after Start
func (s *Simulation) setup(now time.Duration) {
	s.car.SetCenter(s.arena.Bounds().Center())
	s.car.SetVelocity(r2.Point{X: s.cfg.Car.VelocityX, Y: s.cfg.Car.VelocityY})

	if err := s.maze.AddObstacles(s.layout); err != nil {
		s.logger.Error().Err(err).Msg("adding obstacles failed, running without maze")
	}
	s.cells = make([]ObstacleView, 0, len(s.maze.Cells()))
	for _, o := range s.maze.Cells() {
		s.cells = append(s.cells, ObstacleView{Rect: o.Rect, Passable: o.Passable, Token: o.Token})
	}
	s.statObstacles.Store(int64(len(s.maze.Obstacles())))

	s.tickID = s.sched.Every(s.cfg.Sim.TickInterval(), engine.TaskFunc(s.tick))

	if s.cfg.Sim.HeadBob {
		s.head = engine.NewChain(0, true, func(v float64) {
			s.headAngle = v
		},
			engine.Leg{To: parameter.HeadBobAngle, Duration: parameter.HeadBobLeg},
			engine.Leg{To: -parameter.HeadBobAngle, Duration: parameter.HeadBobLeg},
		)
	}

	s.publish()
	s.logger.Info().
		Dur("at", now).
		Float64("x", s.car.Position().X).
		Float64("y", s.car.Position().Y).
		Int("obstacles", len(s.maze.Obstacles())).
		Msg("simulation started")
}

// tick is one fixed step: animations first, then motion, then Arena and Maze in that order
// At most one source can trigger because a hit leaves the car turning
func (s *Simulation) tick(now time.Duration) {
	dt := s.cfg.Sim.TickInterval()
	s.car.StepTurn(dt)
	if s.head != nil {
		s.head.Step(dt)
	}

	if !s.car.Turning() {
		s.car.Advance()
		if s.car.MovingForward() {
			s.car.SetIndicator(component.IndicatorForward)
		} else {
			s.car.SetIndicator(component.IndicatorBackward)
		}
	}

	s.arena.Bounce(s.car)
	s.maze.Bounce(s.car)

	s.statTicks.Add(1)
	if s.meter != nil {
		s.meter.Tick(context.Background())
	}
	s.publish()
}

func (s *Simulation) publish() {
	s.statHeading.Store(s.car.Heading())
	s.statSpeed.Store(s.car.Speed())
	s.statIndicator.Store(s.car.Indicator().String())
	s.statPhase.Store(s.car.Phase().String())
}

// Step advances virtual time by dt, running every task that falls due
func (s *Simulation) Step(dt time.Duration) {
	s.Advance(dt)
}

// Advance is Step returning the number of tasks run
func (s *Simulation) Advance(dt time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Advance(dt)
}

// Tick runs one tick immediately, outside the schedule
func (s *Simulation) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick(s.sched.Now())
}

// Now returns the current virtual time
func (s *Simulation) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Now()
}
