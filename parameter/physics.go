package parameter

import "time"

// Bounce timing
const (
	// TurnDuration is both the delay before a detected bounce is applied and the heading animation length
	TurnDuration = 300 * time.Millisecond
)

// Bounce angle ranges in whole degrees, both ends inclusive
const (
	// BounceWideMin and BounceWideMax apply when both feelers hit (corner or dead end)
	BounceWideMin = 100
	BounceWideMax = 130

	// BounceNarrowMin and BounceNarrowMax apply when a single feeler hits
	BounceNarrowMin = 40
	BounceNarrowMax = 80
)

// Car defaults in world units, y-up
const (
	CarWidth  = 32.0
	CarHeight = 16.0

	// CarStartVelocityX, CarStartVelocityY is the per-tick displacement assigned at start
	CarStartVelocityX = -4.0
	CarStartVelocityY = 0.0
)

// Arena defaults in world units
const (
	ArenaWidth  = 800.0
	ArenaHeight = 600.0
)

// Head-bob presentation
const (
	// HeadBobAngle is the swing amplitude in degrees
	HeadBobAngle = 40.0

	// HeadBobLeg is the duration of one swing (2 * TurnDuration)
	HeadBobLeg = 2 * TurnDuration
)
