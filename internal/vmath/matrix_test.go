package vmath

import (
	"math"
	"testing"
)

func angleClose(a, b Angle, tol float64) bool {
	diff := func(x, y float64) float64 {
		d := math.Abs(x - y)
		if d > 180 {
			d = 360 - d
		}
		return d
	}
	return diff(a.Pitch, b.Pitch) < tol && diff(a.Yaw, b.Yaw) < tol && diff(a.Roll, b.Roll) < tol
}

func TestMatrixAngleRoundTrip(t *testing.T) {
	cases := []Angle{
		NewAngle(0, 0, 0),
		NewAngle(30, 45, 60),
		NewAngle(-15, 200, 5),
		NewAngle(0, 90, 0),
		NewAngle(45, 0, -30),
	}
	for _, a := range cases {
		got := FromAngle(a).ToAngle()
		if !angleClose(a, got, 1e-4) {
			t.Errorf("FromAngle(%v).ToAngle() = %v, want ~%v", a, got, a)
		}
	}
}

func TestMatrixAngleRoundTripGimbalLock(t *testing.T) {
	// Pitch == 90 collapses yaw/roll onto a shared axis; only pitch and the
	// composite rotation need to be preserved, not yaw/roll individually.
	a := NewAngle(90, 20, 40)
	m := FromAngle(a)
	got := m.ToAngle()
	if math.Abs(got.Pitch-90) > 1e-4 {
		t.Errorf("pitch = %v, want ~90", got.Pitch)
	}
	// Applying both rotations to the same test vector should agree even if
	// the individual yaw/roll components don't match.
	v := New(1, 2, 3)
	if got1, got2 := m.RotateVec(v), FromAngle(got).RotateVec(v); !closeVec(got1, got2, 1e-6) {
		t.Errorf("gimbal-lock rotation mismatch: %v vs %v", got1, got2)
	}
}

func closeVec(a, b Vec, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestMatrixIdentity(t *testing.T) {
	v := New(1, 2, 3)
	if got := Identity().RotateVec(v); !got.Eq(v) {
		t.Errorf("Identity rotation changed vector: %v", got)
	}
}

func TestMatrixFromBasisDerivesMissingAxis(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	m := FromBasis(&x, &y, nil)
	if got := m.Up(); !closeVec(got, New(0, 0, 1), 1e-9) {
		t.Errorf("derived z axis = %v, want (0,0,1)", got)
	}
}

func TestMatrixTranspose(t *testing.T) {
	m := FromAngle(NewAngle(10, 20, 30))
	if got := m.Transpose().Transpose(); !got.Eq(m) {
		t.Errorf("double transpose should be identity, got %v want %v", got, m)
	}
}

func TestAngleComponentsNormalized(t *testing.T) {
	a := NewAngle(-370, 725, 1000000)
	for _, v := range []float64{a.Pitch, a.Yaw, a.Roll} {
		if v < 0 || v >= 360 {
			t.Errorf("component %v out of [0, 360)", v)
		}
	}
}

func TestAngleComposeAssociative(t *testing.T) {
	a := NewAngle(10, 20, 30)
	b := NewAngle(5, -10, 15)
	c := NewAngle(-40, 90, 0)

	left := a.Compose(b).Compose(c)
	right := a.Compose(b.Compose(c))

	v := New(1, 0, 0)
	if got1, got2 := left.RotateVec(v), right.RotateVec(v); !closeVec(got1, got2, 1e-6) {
		t.Errorf("rotation composition not associative: %v vs %v", got1, got2)
	}
}
