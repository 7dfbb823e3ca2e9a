package sprp

import (
	"testing"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
	"github.com/vortigaunt/srcbsp/internal/vmath"
)

func sampleProps() []StaticProp {
	return []StaticProp{
		{
			Model:          "models/props/chair.mdl",
			Origin:         vmath.New(100, 200, 30),
			Angles:         vmath.NewAngle(0, 90, 0),
			Visleafs:       []uint16{1, 2, 3},
			Solidity:       6,
			Flags:          0,
			Skin:           0,
			MinFade:        0,
			MaxFade:        0,
			LightingOrigin: vmath.New(100, 200, 35),
			FadeScale:      1,
			Tint:           [3]uint8{255, 255, 255},
			RenderFX:       255,
			Scaling:        1,
		},
		{
			Model:          "models/props/barrel.mdl",
			Origin:         vmath.New(-50, 0, 0),
			Angles:         vmath.NewAngle(10, 0, 0),
			Visleafs:       []uint16{3, 4},
			Solidity:       6,
			LightingOrigin: vmath.New(-50, 0, 5),
			FadeScale:      1,
			Tint:           [3]uint8{255, 255, 255},
			RenderFX:       255,
			Scaling:        1,
		},
	}
}

func TestRoundTripV6(t *testing.T) {
	props := sampleProps()
	for i := range props {
		props[i].MinDXLevel = 0
		props[i].MaxDXLevel = 0
	}
	data, err := Encode(props, 6)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data, 6)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertPropsMatch(t, props, got)
}

func TestRoundTripV11(t *testing.T) {
	props := sampleProps()
	for i := range props {
		props[i].Scaling = 2.5
		props[i].Flags = 0x1FF // exercises both the low byte and flags_high
	}
	data, err := Encode(props, 11)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data, 11)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertPropsMatch(t, props, got)
	for i, p := range got {
		if p.Scaling != 2.5 {
			t.Errorf("prop %d scaling = %v, want 2.5", i, p.Scaling)
		}
		if p.Flags != 0x1FF {
			t.Errorf("prop %d flags = %#x, want 0x1FF", i, p.Flags)
		}
	}
}

func assertPropsMatch(t *testing.T, want, got []StaticProp) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("prop count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.Model != g.Model {
			t.Errorf("prop %d model = %q, want %q", i, g.Model, w.Model)
		}
		if !w.Origin.Eq(g.Origin) {
			t.Errorf("prop %d origin = %v, want %v", i, g.Origin, w.Origin)
		}
		if len(w.Visleafs) != len(g.Visleafs) {
			t.Errorf("prop %d visleaf count = %d, want %d", i, len(g.Visleafs), len(w.Visleafs))
			continue
		}
		for j := range w.Visleafs {
			if w.Visleafs[j] != g.Visleafs[j] {
				t.Errorf("prop %d visleaf %d = %d, want %d", i, j, g.Visleafs[j], w.Visleafs[j])
			}
		}
	}
}

func TestVersionBounds(t *testing.T) {
	if err := CheckVersion(3); err == nil {
		t.Fatal("expected error for version < 4")
	} else if kind, _ := bsperr.KindOf(err); kind != bsperr.UnsupportedStaticPropVersion {
		t.Fatalf("kind = %v, want UnsupportedStaticPropVersion", kind)
	}
	if err := CheckVersion(12); err == nil {
		t.Fatal("expected error for version > 11")
	}
	if err := CheckVersion(4); err != nil {
		t.Fatalf("version 4 should be supported: %v", err)
	}
	if err := CheckVersion(11); err != nil {
		t.Fatalf("version 11 should be supported: %v", err)
	}
}

func TestPreV7DefaultsOnDecode(t *testing.T) {
	props := []StaticProp{{
		Model:          "models/props/simple.mdl",
		Origin:         vmath.New(0, 0, 0),
		Angles:         vmath.NewAngle(0, 0, 0),
		LightingOrigin: vmath.New(0, 0, 0),
	}}
	data, err := Encode(props, 4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p := got[0]
	if p.Tint != [3]uint8{255, 255, 255} || p.RenderFX != 255 {
		t.Errorf("v4 prop should default tint/renderfx, got tint=%v renderfx=%v", p.Tint, p.RenderFX)
	}
	if p.FadeScale != 1 {
		t.Errorf("v4 prop should default fade scale to 1, got %v", p.FadeScale)
	}
}
