package collision

import (
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mazecar/component"
	"github.com/lixenwraith/mazecar/engine"
	"github.com/lixenwraith/mazecar/maze"
	"github.com/lixenwraith/mazecar/physics"
	"github.com/lixenwraith/mazecar/vmath"
)

const turn = 300 * time.Millisecond

type recorder struct {
	detected []BounceEvent
	applied  []BounceEvent
	errs     []error
}

func (r *recorder) BounceDetected(ev BounceEvent) { r.detected = append(r.detected, ev) }

func (r *recorder) BounceApplied(ev BounceEvent, err error) {
	r.applied = append(r.applied, ev)
	r.errs = append(r.errs, err)
}

func newEnv(seed uint64) (*Env, *recorder) {
	rec := &recorder{}
	return &Env{
		Scheduler:    engine.NewScheduler(),
		Rule:         physics.DefaultBounceRule,
		Rng:          vmath.NewFastRand(seed),
		TurnDuration: turn,
		Logger:       zerolog.Nop(),
		Observer:     rec,
	}, rec
}

func square(x0, y0, x1, y1 float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1})
}

// carWithFeelers places a 32x16 car at heading -90 so its right feeler sits at c+(8,16)
// and its left feeler at c+(-8,16)
func carWithFeelers(center r2.Point) *component.Car {
	c := component.NewCar(32, 16)
	c.SetCenter(center)
	c.SetHeading(-90)
	c.SetVelocity(r2.Point{X: 4, Y: 0})
	return c
}

func TestCarWithFeelersGeometry(t *testing.T) {
	c := carWithFeelers(r2.Point{X: 97, Y: 50})
	l, r := c.Feelers()
	assert.InDelta(t, 89, l.X, 1e-9)
	assert.InDelta(t, 66, l.Y, 1e-9)
	assert.InDelta(t, 105, r.X, 1e-9)
	assert.InDelta(t, 66, r.Y, 1e-9)
}

func TestArenaSingleFeelerOutside(t *testing.T) {
	env, rec := newEnv(1)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := carWithFeelers(r2.Point{X: 97, Y: 50})

	left, right := arena.Collide(car)
	assert.False(t, left)
	assert.True(t, right)

	require.True(t, arena.Bounce(car))
	require.Len(t, rec.detected, 1)
	ev := rec.detected[0]
	assert.Equal(t, "arena", ev.Source)
	assert.GreaterOrEqual(t, ev.Angle, 40.0)
	assert.LessOrEqual(t, ev.Angle, 80.0)
}

func TestArenaBounceHoldsCarThenRotatesAfterDelay(t *testing.T) {
	env, rec := newEnv(2)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := carWithFeelers(r2.Point{X: 97, Y: 50})
	velocity := car.Velocity()
	forward := car.MovingForward()

	require.True(t, arena.Bounce(car))
	assert.Equal(t, component.TurnPending, car.Phase())
	assert.Equal(t, velocity, car.Velocity(), "no rotation before the delay")
	assert.Equal(t, forward, car.MovingForward(), "no caller-side direction toggle")

	env.Scheduler.Advance(turn - time.Millisecond)
	assert.Empty(t, rec.applied)

	env.Scheduler.Advance(time.Millisecond)
	require.Len(t, rec.applied, 1)
	assert.NoError(t, rec.errs[0])
	assert.Equal(t, component.TurnAnimating, car.Phase())
	assert.NotEqual(t, forward, car.MovingForward(), "exactly one toggle per bounce")

	want := vmath.Rotate(velocity, rec.applied[0].Angle)
	assert.InDelta(t, want.X, car.Velocity().X, 1e-9)
	assert.InDelta(t, want.Y, car.Velocity().Y, 1e-9)
}

func TestArenaBothFeelersOutside(t *testing.T) {
	env, rec := newEnv(3)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := component.NewCar(32, 16)
	car.SetPosition(r2.Point{X: 120, Y: 40})

	require.True(t, arena.Bounce(car))
	ev := rec.detected[0]
	assert.True(t, ev.Left)
	assert.True(t, ev.Right)
	abs := ev.Angle
	if abs < 0 {
		abs = -abs
	}
	assert.GreaterOrEqual(t, abs, 100.0)
	assert.LessOrEqual(t, abs, 130.0)
}

func TestArenaInsideNoBounce(t *testing.T) {
	env, rec := newEnv(4)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := component.NewCar(32, 16)
	car.SetCenter(r2.Point{X: 50, Y: 50})

	assert.False(t, arena.Bounce(car))
	assert.Empty(t, rec.detected)
	assert.Equal(t, 0, env.Scheduler.Pending())
	assert.False(t, car.Turning())
}

func TestArenaEdgeCountsAsInside(t *testing.T) {
	env, _ := newEnv(5)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := component.NewCar(32, 16)
	car.SetPosition(r2.Point{X: 0, Y: 0})

	left, right := arena.Collide(car)
	assert.False(t, left)
	assert.False(t, right)
}

func TestBounceSkipsTurningCar(t *testing.T) {
	env, rec := newEnv(6)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := component.NewCar(32, 16)
	car.SetPosition(r2.Point{X: 120, Y: 40})
	require.True(t, car.Hold())

	assert.False(t, arena.Bounce(car))
	assert.Empty(t, rec.detected)
}

func TestOnlyOneSourceTriggersPerCheck(t *testing.T) {
	env, rec := newEnv(7)
	arena := NewArena(square(0, 0, 100, 100), env)
	m := NewMaze(square(0, 0, 100, 100), env)
	_, err := m.AddObstacle(square(-50, -50, 200, 200))
	require.NoError(t, err)

	car := component.NewCar(32, 16)
	car.SetPosition(r2.Point{X: 120, Y: 40})

	assert.True(t, arena.Bounce(car))
	assert.False(t, m.Bounce(car))
	assert.Len(t, rec.detected, 1)
	assert.Equal(t, 1, env.Scheduler.Pending())
}

func TestMazeFirstMatchInInsertionOrder(t *testing.T) {
	env, _ := newEnv(8)
	m := NewMaze(square(0, 0, 200, 200), env)

	// left feeler (89,66), right feeler (105,66)
	car := carWithFeelers(r2.Point{X: 97, Y: 50})

	_, err := m.AddObstacle(square(150, 150, 160, 160)) // O1: misses
	require.NoError(t, err)
	o2, err := m.AddObstacle(square(80, 60, 95, 70)) // O2: left only
	require.NoError(t, err)
	_, err = m.AddObstacle(square(80, 60, 120, 70)) // O3: both
	require.NoError(t, err)

	left, right := m.Collide(car)
	assert.True(t, left)
	assert.False(t, right, "O3 must never be consulted once O2 matched")

	l, r := car.Feelers()
	assert.Same(t, o2, m.First(l, r))
}

func TestMazeFirstMatchWhenLaterObstacleHoldsOtherFeeler(t *testing.T) {
	env, _ := newEnv(9)
	m := NewMaze(square(0, 0, 200, 200), env)
	car := carWithFeelers(r2.Point{X: 97, Y: 50})

	_, err := m.AddObstacle(square(100, 60, 110, 70)) // right feeler only, inserted first
	require.NoError(t, err)
	_, err = m.AddObstacle(square(85, 60, 95, 70)) // left feeler only
	require.NoError(t, err)

	left, right := m.Collide(car)
	assert.False(t, left)
	assert.True(t, right)
}

func TestMazeNoMatch(t *testing.T) {
	env, rec := newEnv(10)
	m := NewMaze(square(0, 0, 200, 200), env)
	_, err := m.AddObstacle(square(0, 0, 10, 10))
	require.NoError(t, err)

	car := component.NewCar(32, 16)
	car.SetCenter(r2.Point{X: 100, Y: 100})

	left, right := m.Collide(car)
	assert.False(t, left)
	assert.False(t, right)
	assert.False(t, m.Bounce(car))
	assert.Empty(t, rec.detected)
}

func TestMazeAddObstaclesFromLayout(t *testing.T) {
	env, _ := newEnv(11)
	m := NewMaze(square(0, 0, 300, 200), env)
	layout, err := maze.NewLayout([][]string{
		{"x", "o", "o"},
		{"o", "o", "x"},
	})
	require.NoError(t, err)
	require.NoError(t, m.AddObstacles(layout))

	assert.Len(t, m.Cells(), 6)
	require.Len(t, m.Obstacles(), 2)

	// Row 0 is the top row
	first := m.Obstacles()[0]
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, 0, first.Col)
	assert.Equal(t, square(0, 100, 100, 200), first.Rect)

	second := m.Obstacles()[1]
	assert.Equal(t, square(200, 0, 300, 100), second.Rect)

	// Decorative cells are kept for drawing but never collide
	assert.True(t, m.Cells()[1].Passable)
	assert.Nil(t, m.First(r2.Point{X: 150, Y: 150}))
	assert.Same(t, first, m.First(r2.Point{X: 50, Y: 150}))
}

func TestMazeIndexMatchesLinearScan(t *testing.T) {
	env, _ := newEnv(12)
	m := NewMaze(square(0, 0, 400, 400), env)
	rng := vmath.NewFastRand(12)

	for i := 0; i < 60; i++ {
		x, y := float64(rng.Intn(380)), float64(rng.Intn(380))
		w, h := float64(5+rng.Intn(40)), float64(5+rng.Intn(40))
		_, err := m.AddObstacle(square(x, y, x+w, y+h))
		require.NoError(t, err)
	}

	linear := func(points ...r2.Point) *Obstacle {
		for _, o := range m.Obstacles() {
			for _, p := range points {
				if o.Contains(p) {
					return o
				}
			}
		}
		return nil
	}

	for i := 0; i < 500; i++ {
		a := r2.Point{X: rng.Float64() * 400, Y: rng.Float64() * 400}
		b := r2.Point{X: rng.Float64() * 400, Y: rng.Float64() * 400}
		assert.Same(t, linear(a, b), m.First(a, b))
	}
}

func TestMazeRejectsDegenerateObstacle(t *testing.T) {
	env, _ := newEnv(13)
	m := NewMaze(square(0, 0, 100, 100), env)
	_, err := m.AddObstacle(square(10, 10, 10, 20))
	assert.Error(t, err)
	assert.Empty(t, m.Obstacles())
}

func TestMazeAddObstaclesEmptyLayout(t *testing.T) {
	env, _ := newEnv(14)
	m := NewMaze(square(0, 0, 100, 100), env)
	assert.ErrorIs(t, m.AddObstacles(maze.Layout{}), maze.ErrEmptyLayout)
}

func TestBounceTaskRejectionReported(t *testing.T) {
	env, rec := newEnv(15)
	arena := NewArena(square(0, 0, 100, 100), env)
	car := component.NewCar(32, 16)
	car.SetPosition(r2.Point{X: 120, Y: 40})
	require.True(t, arena.Bounce(car))

	// Something else starts the animation before the scheduled task fires
	require.NoError(t, car.Rotate(10, time.Second))
	env.Scheduler.Advance(turn)

	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], component.ErrAlreadyTurning)
}
