package vmath

import "math"

// Matrix is a 3x3 row-major rotation matrix. Rows are conventionally
// "forward" (row 0), "left" (row 1), "up" (row 2) unit vectors. The zero
// value is NOT a valid Matrix; use Identity().
type Matrix struct {
	// aa ab ac
	// ba bb bc
	// ca cb cc
	AA, AB, AC float64
	BA, BB, BC float64
	CA, CB, CC float64
}

// Identity returns the identity rotation.
func Identity() Matrix {
	return Matrix{
		AA: 1, BB: 1, CC: 1,
	}
}

// FromPitch returns the rotation about Y by pitch degrees.
func FromPitch(pitch float64) Matrix {
	r := radians(pitch)
	cos, sin := math.Cos(r), math.Sin(r)
	return Matrix{
		AA: cos, AB: 0, AC: -sin,
		BA: 0, BB: 1, BC: 0,
		CA: sin, CB: 0, CC: cos,
	}
}

// FromYaw returns the rotation about Z by yaw degrees.
func FromYaw(yaw float64) Matrix {
	r := radians(yaw)
	sin, cos := math.Sin(r), math.Cos(r)
	return Matrix{
		AA: cos, AB: sin, AC: 0,
		BA: -sin, BB: cos, BC: 0,
		CA: 0, CB: 0, CC: 1,
	}
}

// FromRoll returns the rotation about X by roll degrees.
func FromRoll(roll float64) Matrix {
	r := radians(roll)
	cos, sin := math.Cos(r), math.Sin(r)
	return Matrix{
		AA: 1, AB: 0, AC: 0,
		BA: 0, BB: cos, BC: sin,
		CA: 0, CB: -sin, CC: cos,
	}
}

// FromAngle builds the matrix for roll, then pitch, then yaw composed, per
// the Source engine Euler convention.
func FromAngle(a Angle) Matrix {
	cp, sp := math.Cos(radians(a.Pitch)), math.Sin(radians(a.Pitch))
	sy, cy := math.Sin(radians(a.Yaw)), math.Cos(radians(a.Yaw))
	cr, sr := math.Cos(radians(a.Roll)), math.Sin(radians(a.Roll))

	crCy, crSy := cr*cy, cr*sy
	srCy, srSy := sr*cy, sr*sy

	return Matrix{
		AA: cp * cy,
		AB: cp * sy,
		AC: -sp,

		BA: sp*srCy - crSy,
		BB: sp*srSy + crCy,
		BC: sr * cp,

		CA: sp*crCy + srSy,
		CB: sp*crSy - srCy,
		CC: cr * cp,
	}
}

// Forward returns row 0, the +X basis vector.
func (m Matrix) Forward() Vec { return Vec{m.AA, m.AB, m.AC} }

// Left returns row 1, the +Y basis vector.
func (m Matrix) Left() Vec { return Vec{m.BA, m.BB, m.BC} }

// Up returns row 2, the +Z basis vector.
func (m Matrix) Up() Vec { return Vec{m.CA, m.CB, m.CC} }

// ToAngle reconstructs the Euler angle replicating this rotation.
//
// See https://github.com/ValveSoftware/source-sdk-2013/blob/master/sp/src/mathlib/mathlib_base.cpp
// for the reference implementation this mirrors.
func (m Matrix) ToAngle() Angle {
	forX, forY, forZ := m.AA, m.AB, m.AC
	leftX, leftY := m.BA, m.BB
	leftZ := m.BC
	upZ := m.CC

	horizDist := math.Sqrt(forX*forX + forY*forY)
	if horizDist > 0.001 {
		return NewAngle(
			degrees(math.Atan2(-forZ, horizDist)),
			degrees(math.Atan2(forY, forX)),
			degrees(math.Atan2(leftZ, upZ)),
		)
	}
	// Gimbal lock: pitch is +-90, yaw and roll collapse onto the same axis.
	return NewAngle(
		degrees(math.Atan2(-forZ, horizDist)),
		degrees(math.Atan2(-leftX, leftY)),
		0,
	)
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		AA: m.AA, AB: m.BA, AC: m.CA,
		BA: m.AB, BB: m.BB, BC: m.CB,
		CA: m.AC, CB: m.BC, CC: m.CC,
	}
}

// FromBasis builds a matrix from at least two of the three basis vectors;
// the third is derived via Cross using the sign appropriate to the missing
// axis. Each provided basis vector is normalized before use.
//
// Exactly one of x, y, z should be nil to signal "derive this one".
func FromBasis(x, y, z *Vec) Matrix {
	switch {
	case x == nil && y != nil && z != nil:
		v := y.Cross(*z)
		x = &v
	case y == nil && x != nil && z != nil:
		v := z.Cross(*x)
		y = &v
	case z == nil && x != nil && y != nil:
		v := x.Cross(*y)
		z = &v
	}
	xn, yn, zn := x.Norm(), y.Norm(), z.Norm()
	return Matrix{
		AA: xn.X, AB: xn.Y, AC: xn.Z,
		BA: yn.X, BB: yn.Y, BC: yn.Z,
		CA: zn.X, CB: zn.Y, CC: zn.Z,
	}
}

// MulMatrix returns the matrix representing "m rotated by o" (m composed
// with o, m applied first).
func (m Matrix) MulMatrix(o Matrix) Matrix {
	return Matrix{
		AA: m.AA*o.AA + m.AB*o.BA + m.AC*o.CA,
		AB: m.AA*o.AB + m.AB*o.BB + m.AC*o.CB,
		AC: m.AA*o.AC + m.AB*o.BC + m.AC*o.CC,

		BA: m.BA*o.AA + m.BB*o.BA + m.BC*o.CA,
		BB: m.BA*o.AB + m.BB*o.BB + m.BC*o.CB,
		BC: m.BA*o.AC + m.BB*o.BC + m.BC*o.CC,

		CA: m.CA*o.AA + m.CB*o.BA + m.CC*o.CA,
		CB: m.CA*o.AB + m.CB*o.BB + m.CC*o.CB,
		CC: m.CA*o.AC + m.CB*o.BC + m.CC*o.CC,
	}
}

// MulAngle returns m rotated by the rotation a represents: m.MulMatrix(FromAngle(a)).
func (m Matrix) MulAngle(a Angle) Matrix { return m.MulMatrix(FromAngle(a)) }

// RotateVec rotates v by this matrix (Vec @ Matrix in the source
// convention): row vector times matrix.
func (m Matrix) RotateVec(v Vec) Vec {
	return Vec{
		X: v.X*m.AA + v.Y*m.BA + v.Z*m.CA,
		Y: v.X*m.AB + v.Y*m.BB + v.Z*m.CB,
		Z: v.X*m.AC + v.Y*m.BC + v.Z*m.CC,
	}
}

// Eq reports componentwise equality.
func (m Matrix) Eq(o Matrix) bool {
	return m.AA == o.AA && m.AB == o.AB && m.AC == o.AC &&
		m.BA == o.BA && m.BB == o.BB && m.BC == o.BC &&
		m.CA == o.CA && m.CB == o.CB && m.CC == o.CC
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
