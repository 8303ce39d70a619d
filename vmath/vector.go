package vmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rotate rotates v counter-clockwise about the origin by deg degrees
func Rotate(v r2.Point, deg float64) r2.Point {
	sin, cos := math.Sincos(Radians(deg))
	return r2.Point{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateAbout rotates p about center by deg degrees
func RotateAbout(p, center r2.Point, deg float64) r2.Point {
	return Rotate(p.Sub(center), deg).Add(center)
}

// Magnitude returns the Euclidean length of v
func Magnitude(v r2.Point) float64 {
	return v.Norm()
}

// HeadingOf returns the direction of v in degrees, (-180,180]
func HeadingOf(v r2.Point) float64 {
	return Degrees(math.Atan2(v.Y, v.X))
}

// RectFromOrigin builds a rect from its bottom-left corner and size
func RectFromOrigin(origin r2.Point, w, h float64) r2.Rect {
	return r2.RectFromPoints(origin, r2.Point{X: origin.X + w, Y: origin.Y + h})
}

// Contains reports whether p lies inside r, edges included
func Contains(r r2.Rect, p r2.Point) bool {
	return r.ContainsPoint(p)
}
