package component

import (
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mazecar/vmath"
)

const tick = time.Second / 30

func newTestCar() *Car {
	c := NewCar(32, 16)
	c.SetCenter(r2.Point{X: 400, Y: 300})
	c.SetVelocity(r2.Point{X: -4, Y: 0})
	return c
}

func TestCarAdvanceForwardAndBackward(t *testing.T) {
	c := newTestCar()
	start := c.Position()

	require.True(t, c.Advance())
	assert.Equal(t, start.Add(r2.Point{X: -4}), c.Position())

	c.ToggleDirection()
	require.True(t, c.Advance())
	assert.Equal(t, start, c.Position())
}

func TestCarAdvanceNoopWhileTurning(t *testing.T) {
	c := newTestCar()
	require.True(t, c.Hold())
	start := c.Position()

	for i := 0; i < 20; i++ {
		assert.False(t, c.Advance())
	}
	assert.Equal(t, start, c.Position())

	require.NoError(t, c.Rotate(60, 300*time.Millisecond))
	for i := 0; i < 5; i++ {
		c.StepTurn(tick)
		assert.False(t, c.Advance())
	}
	assert.Equal(t, start, c.Position())
}

func TestCarHoldOnlyFromIdle(t *testing.T) {
	c := newTestCar()
	assert.True(t, c.Hold())
	assert.Equal(t, TurnPending, c.Phase())
	assert.False(t, c.Hold())
}

func TestCarRotatePreservesSpeed(t *testing.T) {
	for _, angle := range []float64{-130, -100, -80, -40, 40, 80, 100, 130, 17.5} {
		c := newTestCar()
		c.SetVelocity(r2.Point{X: 3, Y: -4})
		before := c.Speed()

		require.NoError(t, c.Rotate(angle, 300*time.Millisecond))
		assert.InDelta(t, before, c.Speed(), 1e-9, "angle=%v", angle)
	}
}

func TestCarRotateTogglesDirectionAndIndicator(t *testing.T) {
	c := newTestCar()
	require.True(t, c.MovingForward())

	require.NoError(t, c.Rotate(45, 300*time.Millisecond))
	assert.False(t, c.MovingForward())
	assert.Equal(t, IndicatorLeft, c.Indicator())

	c.StepTurn(time.Second)

	require.NoError(t, c.Rotate(-45, 300*time.Millisecond))
	assert.True(t, c.MovingForward())
	assert.Equal(t, IndicatorRight, c.Indicator())
}

func TestCarRotateSetsTurningSynchronously(t *testing.T) {
	c := newTestCar()
	require.NoError(t, c.Rotate(90, 300*time.Millisecond))
	assert.True(t, c.Turning())
	assert.Equal(t, TurnAnimating, c.Phase())
}

func TestCarRotateAnimatesHeadingOnly(t *testing.T) {
	c := newTestCar()
	require.NoError(t, c.Rotate(90, 300*time.Millisecond))

	velocity := c.Velocity()
	pos := c.Position()
	assert.InDelta(t, 0, velocity.X, 1e-9)
	assert.InDelta(t, -4, velocity.Y, 1e-9)

	c.StepTurn(150 * time.Millisecond)
	assert.InDelta(t, 45, c.Heading(), 1e-9)
	assert.True(t, c.Turning())
	assert.Equal(t, velocity, c.Velocity())
	assert.Equal(t, pos, c.Position())

	c.StepTurn(150 * time.Millisecond)
	assert.InDelta(t, 90, c.Heading(), 1e-9)
	assert.False(t, c.Turning())
	assert.Equal(t, TurnIdle, c.Phase())
}

func TestCarTurningClearsAfterDuration(t *testing.T) {
	c := newTestCar()
	require.NoError(t, c.Rotate(-60, 300*time.Millisecond))

	// 9 ticks at 30Hz fall just short of 300ms
	for i := 0; i < 9; i++ {
		c.StepTurn(tick)
	}
	assert.True(t, c.Turning())

	c.StepTurn(tick)
	assert.False(t, c.Turning())
	assert.InDelta(t, -60, c.Heading(), 1e-9)
}

func TestCarRotateRejectedWhileAnimating(t *testing.T) {
	c := newTestCar()
	require.NoError(t, c.Rotate(50, 300*time.Millisecond))
	velocity := c.Velocity()
	forward := c.MovingForward()

	err := c.Rotate(70, 300*time.Millisecond)
	assert.ErrorIs(t, err, ErrAlreadyTurning)
	assert.Equal(t, velocity, c.Velocity())
	assert.Equal(t, forward, c.MovingForward())
}

func TestCarRotateAllowedFromPending(t *testing.T) {
	c := newTestCar()
	require.True(t, c.Hold())
	assert.NoError(t, c.Rotate(50, 300*time.Millisecond))
}

func TestCarToggleDirectionTwiceIsIdentity(t *testing.T) {
	c := newTestCar()
	before := c.MovingForward()
	c.ToggleDirection()
	c.ToggleDirection()
	assert.Equal(t, before, c.MovingForward())
}

func TestCarFeelersAtZeroHeading(t *testing.T) {
	c := NewCar(32, 16)
	c.SetPosition(r2.Point{X: 100, Y: 50})

	left, right := c.Feelers()
	assert.InDelta(t, 100, left.X, 1e-9)
	assert.InDelta(t, 50, left.Y, 1e-9)
	assert.InDelta(t, 100, right.X, 1e-9)
	assert.InDelta(t, 66, right.Y, 1e-9)
}

func TestCarFeelersFollowHeading(t *testing.T) {
	c := NewCar(32, 16)
	c.SetPosition(r2.Point{X: 100, Y: 50})
	require.NoError(t, c.Rotate(180, 0))
	c.StepTurn(0)
	require.InDelta(t, 180, c.Heading(), 1e-9)

	// Half a turn mirrors the left edge onto the right edge
	left, right := c.Feelers()
	assert.InDelta(t, 132, left.X, 1e-9)
	assert.InDelta(t, 66, left.Y, 1e-9)
	assert.InDelta(t, 132, right.X, 1e-9)
	assert.InDelta(t, 50, right.Y, 1e-9)

	// Feelers stay at a fixed distance from the center for any heading
	center := c.Center()
	want := vmath.Magnitude(c.Position().Sub(center))
	assert.InDelta(t, want, vmath.Magnitude(left.Sub(center)), 1e-9)
	assert.InDelta(t, want, vmath.Magnitude(right.Sub(center)), 1e-9)
}

func TestCarCenterRoundTrip(t *testing.T) {
	c := NewCar(32, 16)
	c.SetCenter(r2.Point{X: 10, Y: 20})
	assert.Equal(t, r2.Point{X: -6, Y: 12}, c.Position())
	assert.Equal(t, r2.Point{X: 10, Y: 20}, c.Center())
}

func TestIndicatorAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "none", IndicatorNone.String())
	assert.Equal(t, "backward", IndicatorBackward.String())
	assert.Equal(t, "pending", TurnPending.String())
	assert.Equal(t, "idle", TurnIdle.String())
}
