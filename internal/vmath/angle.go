package vmath

import "math"

// Angle is a mutable Euler rotation in degrees (pitch, yaw, roll). Every
// component is kept in [0, 360) at all times.
type Angle struct {
	Pitch, Yaw, Roll float64
}

// NewAngle builds a normalized Angle from raw degree values.
func NewAngle(pitch, yaw, roll float64) Angle {
	return Angle{norm360(pitch), norm360(yaw), norm360(roll)}
}

// norm360 maps x into [0, 360). `math.Mod(x, 360)` keeps the sign of x, so
// a negative result is shifted up by 360; for tiny negative x (e.g. -1e-14)
// that sum rounds to exactly 360, so - matching the reference
// implementation - the modulus is applied a second time.
func norm360(x float64) float64 {
	m := math.Mod(x, 360)
	if m < 0 {
		m += 360
	}
	return math.Mod(m, 360)
}

// Scale multiplies all three components by s, then re-normalizes.
func (a Angle) Scale(s float64) Angle {
	return NewAngle(a.Pitch*s, a.Yaw*s, a.Roll*s)
}

// Eq reports componentwise equality.
func (a Angle) Eq(o Angle) bool {
	return a.Pitch == o.Pitch && a.Yaw == o.Yaw && a.Roll == o.Roll
}

// Compose returns "a rotated by o": a @ o in the source convention,
// equivalent to Matrix.FromAngle(a).MulAngle(o).ToAngle().
func (a Angle) Compose(o Angle) Angle {
	return FromAngle(a).MulAngle(o).ToAngle()
}

// RotateVec rotates v by this angle (Vec @ Angle).
func (a Angle) RotateVec(v Vec) Vec {
	return FromAngle(a).RotateVec(v)
}
