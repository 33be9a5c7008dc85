package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq for float64 comparisons.
const Epsilon = 1e-9

// Vector2D is a point or displacement in cartesian 2D space.
// The fields are exported on purpose: a vector is plain data, and literal
// initialization (v := Vector2D{1, 2}) stays cheap and readable.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polar builds a vector of the given length pointing at theta radians.
// No rounding is applied near zero: callers that derive velocity from a
// heading rely on the result being exactly (cos(theta)*r, sin(theta)*r).
func Polar(r, theta float64) Vector2D {
	return Vector2D{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// String implements fmt.Stringer for readable log output.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic. Value receivers returning new values: vectors are small
// and immutability keeps rule code free of aliasing surprises.
// ---------------------------------------------------------------------

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales v by a scalar.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// ---------------------------------------------------------------------
// Magnitude and distance
// ---------------------------------------------------------------------

// Len is the magnitude of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSqr is the squared magnitude. Cheaper than Len for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceTo is the Euclidean distance between two points.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo is the squared Euclidean distance between two points.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// ---------------------------------------------------------------------
// Angles
// ---------------------------------------------------------------------

// Angle is the bearing of the vector relative to the X axis, in radians.
// Range: [-Pi, Pi]. Angle of the zero vector is 0 (math.Atan2(0, 0) == 0).
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo is the bearing from v to other, in radians.
func (v Vector2D) AngleTo(other Vector2D) float64 {
	return math.Atan2(other.Y-v.Y, other.X-v.X)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq reports whether both coordinates match within Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
