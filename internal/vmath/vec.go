// Package vmath implements the 3-vector, Euler angle and rotation matrix
// conventions used throughout the Source engine map format: degree-based
// angles, pitch-Y/yaw-Z/roll-X axis mapping, and roll-then-pitch-then-yaw
// composition order.
package vmath

import (
	"math"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

// Vec is a mutable 3-tuple of float64, matching Source engine coordinate
// conventions (X forward, Y left, Z up).
type Vec struct {
	X, Y, Z float64
}

// New builds a Vec from three components.
func New(x, y, z float64) Vec { return Vec{x, y, z} }

// Add returns the componentwise sum.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the componentwise difference.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// AddScalar broadcasts a scalar addition across all three components.
func (v Vec) AddScalar(s float64) Vec { return Vec{v.X + s, v.Y + s, v.Z + s} }

// SubScalar broadcasts a scalar subtraction across all three components.
func (v Vec) SubScalar(s float64) Vec { return Vec{v.X - s, v.Y - s, v.Z - s} }

// Scale multiplies every component by s. Vec*Vec has no defined meaning in
// this format (use Dot or Cross), so unlike Add/Sub this only takes a
// scalar.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s, v.Z * s} }

// Div divides every component by s (true division).
func (v Vec) Div(s float64) Vec { return Vec{v.X / s, v.Y / s, v.Z / s} }

// FloorDiv divides every component by s and floors the result.
func (v Vec) FloorDiv(s float64) Vec {
	return Vec{math.Floor(v.X / s), math.Floor(v.Y / s), math.Floor(v.Z / s)}
}

// Mod returns each component modulo s. A nonzero result takes the sign of
// s (floored modulo), so it pairs with FloorDiv.
func (v Vec) Mod(s float64) Vec {
	mod := func(x float64) float64 {
		r := math.Mod(x, s)
		if r != 0 && (r < 0) != (s < 0) {
			r += s
		}
		return r
	}
	return Vec{mod(v.X), mod(v.Y), mod(v.Z)}
}

// DivMod returns FloorDiv and Mod in one call, mirroring Python's divmod.
func (v Vec) DivMod(s float64) (Vec, Vec) { return v.FloorDiv(s), v.Mod(s) }

// MulVec and DivVec are deliberately absent: component-wise vector*vector is
// ambiguous in this convention (it's neither Dot nor Cross), so it is
// exposed only as an explicit error for API callers coming from the
// dynamic-language original, via MulVecErr.

// MulVecErr reports the AmbiguousVectorProduct error raised when two Vecs
// are multiplied directly; callers should use Dot or Cross instead.
func MulVecErr() error {
	return bsperr.New(bsperr.AmbiguousVectorProduct, "cannot multiply 2 vectors, use Dot or Cross")
}

// Eq reports componentwise equality.
func (v Vec) Eq(o Vec) bool { return v.X == o.X && v.Y == o.Y && v.Z == o.Z }

// Less is a partial order: true only if every component of v is strictly
// less than the corresponding component of o.
func (v Vec) Less(o Vec) bool { return v.X < o.X && v.Y < o.Y && v.Z < o.Z }

// LessEq is the non-strict counterpart of Less.
func (v Vec) LessEq(o Vec) bool { return v.X <= o.X && v.Y <= o.Y && v.Z <= o.Z }

// Dot returns the dot product.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LenSq returns the squared Euclidean length.
func (v Vec) LenSq() float64 { return v.Dot(v) }

// Mag returns the Euclidean length.
func (v Vec) Mag() float64 { return math.Sqrt(v.LenSq()) }

// Norm returns a unit vector in the same direction, or the zero vector
// unchanged if v is the zero vector.
func (v Vec) Norm() Vec {
	m := v.Mag()
	if m == 0 {
		return v
	}
	return v.Div(m)
}

// Abs returns the componentwise absolute value.
func (v Vec) Abs() Vec { return Vec{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)} }

// Neg returns the componentwise negation.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y, -v.Z} }

// Axis reports which single axis v lies on ("x", "y", or "z"), failing with
// ZeroAxisVector if v is the zero vector or has more than one nonzero
// component.
func (v Vec) Axis() (string, error) {
	x, y, z := v.X != 0, v.Y != 0, v.Z != 0
	switch {
	case x && !y && !z:
		return "x", nil
	case !x && y && !z:
		return "y", nil
	case !x && !y && z:
		return "z", nil
	default:
		return "", bsperr.New(bsperr.ZeroAxisVector, "(%g, %g, %g) is not an on-axis vector", v.X, v.Y, v.Z)
	}
}

// RotationAround returns the angle-equivalent Vec (in degrees, one
// nonzero component) that rotates `rot` degrees around an axis-aligned
// normal v. Fails with ZeroAxisVector if v is not axis-aligned.
func (v Vec) RotationAround(rot float64) (Vec, error) {
	axis, err := v.Axis()
	if err != nil {
		return Vec{}, err
	}
	switch axis {
	case "x":
		return Vec{Z: v.X * rot}, nil
	case "y":
		return Vec{X: v.Y * rot}, nil
	default:
		return Vec{Y: v.Z * rot}, nil
	}
}

// BBox returns the componentwise min and max of the given points (two zero
// vectors when no points are given).
func BBox(points ...Vec) (min, max Vec) {
	if len(points) == 0 {
		return Vec{}, Vec{}
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min = Vec{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return min, max
}

// IterGrid yields every point on an integer grid between min and max
// (inclusive on both ends) stepping by stride along each axis.
func IterGrid(min, max Vec, stride float64, fn func(Vec) bool) {
	if stride <= 0 {
		stride = 1
	}
	for x := min.X; x <= max.X; x += stride {
		for y := min.Y; y <= max.Y; y += stride {
			for z := min.Z; z <= max.Z; z += stride {
				if !fn(Vec{x, y, z}) {
					return
				}
			}
		}
	}
}

// IterLine yields samples from v to end spaced stride apart, always
// including both endpoints even when the span isn't an exact multiple of
// stride.
func (v Vec) IterLine(end Vec, stride float64, fn func(Vec) bool) {
	offset := end.Sub(v)
	length := offset.Mag()
	if length < stride {
		if !fn(v) {
			return
		}
		if !v.Eq(end) {
			fn(end)
		}
		return
	}
	direction := offset.Norm()
	for pos := 0.0; pos < length; pos += stride {
		if !fn(v.Add(direction.Scale(pos))) {
			return
		}
	}
	fn(end)
}
