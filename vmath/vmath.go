package vmath

import "math"

// Epsilon is the tolerance used for float comparisons in geometry helpers
const Epsilon = 1e-9

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NearlyEqual reports whether a and b differ by at most tol
func NearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Lerp interpolates linearly between a and b, t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits t to [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// --- Randomness ---

// FastRand is a xorshift64 generator; not safe for concurrent use
// Seeded explicitly so simulation runs are reproducible
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// IntRange returns a uniform integer in [lo, hi], both inclusive
func (r *FastRand) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Sign returns -1 or +1 with equal probability
func (r *FastRand) Sign() int {
	if r.Next()&1 == 0 {
		return -1
	}
	return 1
}

// Float64 returns a uniform value in [0,1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}
