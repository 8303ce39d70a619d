package physics

import (
	"github.com/lixenwraith/mazecar/parameter"
	"github.com/lixenwraith/mazecar/vmath"
)

// AngleRange is an inclusive range of whole degrees
type AngleRange struct {
	Min, Max int
}

// BounceRule decides how far a car turns after a feeler hit
// Ranges are asymmetric so a single-side hit steers away from the wall it touched,
// while a two-side hit (corner, dead end) needs the wide range to escape
type BounceRule struct {
	Wide   AngleRange
	Narrow AngleRange
}

// DefaultBounceRule uses the stock ranges: wide [100,130], narrow [40,80]
var DefaultBounceRule = BounceRule{
	Wide:   AngleRange{Min: parameter.BounceWideMin, Max: parameter.BounceWideMax},
	Narrow: AngleRange{Min: parameter.BounceNarrowMin, Max: parameter.BounceNarrowMax},
}

// Decide returns the signed bounce angle in degrees for the given feeler hits
// ok is false when neither feeler hit; a hit always implies a direction flip
//
//	both:       ±[Wide.Min, Wide.Max], sign uniform
//	right only: +[Narrow.Min, Narrow.Max]
//	left only:  -[Narrow.Min, Narrow.Max]
func (b BounceRule) Decide(left, right bool, rng *vmath.FastRand) (angle float64, ok bool) {
	switch {
	case left && right:
		return float64(rng.IntRange(b.Wide.Min, b.Wide.Max) * rng.Sign()), true
	case right:
		return float64(rng.IntRange(b.Narrow.Min, b.Narrow.Max)), true
	case left:
		return -float64(rng.IntRange(b.Narrow.Min, b.Narrow.Max)), true
	default:
		return 0, false
	}
}

// Decide applies DefaultBounceRule
func Decide(left, right bool, rng *vmath.FastRand) (float64, bool) {
	return DefaultBounceRule.Decide(left, right, rng)
}
