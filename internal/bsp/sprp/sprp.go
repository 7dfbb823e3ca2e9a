// Package sprp implements the version-dispatched binary record format used
// by the "sprp" game lump (static prop instances), versions 4 through 11.
package sprp

import (
	"bytes"
	"encoding/binary"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
	"github.com/vortigaunt/srcbsp/internal/vmath"
)

// MinVersion and MaxVersion bound the supported sprp record versions.
const (
	MinVersion = 4
	MaxVersion = 11
)

const modelNameSize = 128

// StaticProp is one non-interactive model instance placed in the world.
// Fields not present at a given record version read back as their
// documented default and are simply not written at that version.
type StaticProp struct {
	Model    string
	Origin   vmath.Vec
	Angles   vmath.Angle
	Visleafs []uint16

	Solidity uint8
	Flags    uint32
	Skin     int32
	MinFade  float32
	MaxFade  float32

	LightingOrigin vmath.Vec
	FadeScale      float32 // version >= 5; else 1

	MinDXLevel, MaxDXLevel uint16 // version in {6,7}; else 0

	MinCPULevel, MaxCPULevel uint8 // version >= 8; else 0
	MinGPULevel, MaxGPULevel uint8

	Tint     [3]uint8 // version >= 7; else (255,255,255)
	RenderFX uint8    // version >= 7; else 255

	Scaling       float32 // version >= 11; else 1
	DisableOnXbox bool    // version in {9,10}; else false
}

// CheckVersion reports UnsupportedStaticPropVersion if v is outside
// [MinVersion, MaxVersion].
func CheckVersion(v int32) error {
	if v < MinVersion || v > MaxVersion {
		return bsperr.New(bsperr.UnsupportedStaticPropVersion, "static prop version %d not in [%d, %d]", v, MinVersion, MaxVersion)
	}
	return nil
}

// Decode parses the sprp game lump payload at the given record version.
func Decode(data []byte, version int32) ([]StaticProp, error) {
	if err := CheckVersion(version); err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)

	var modelCount int32
	if err := binary.Read(r, binary.LittleEndian, &modelCount); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read sprp model count")
	}
	models := make([]string, modelCount)
	for i := range models {
		var raw [modelNameSize]byte
		if _, err := r.Read(raw[:]); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "read sprp model name %d", i)
		}
		models[i] = trimNul(raw[:])
	}

	var leafCount int32
	if err := binary.Read(r, binary.LittleEndian, &leafCount); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read sprp leaf count")
	}
	leaves := make([]uint16, leafCount)
	if err := binary.Read(r, binary.LittleEndian, &leaves); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read sprp leaf table")
	}

	var propCount int32
	if err := binary.Read(r, binary.LittleEndian, &propCount); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read sprp prop count")
	}

	props := make([]StaticProp, propCount)
	for i := range props {
		p, err := decodeOne(r, version, models, leaves)
		if err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "read static prop %d", i)
		}
		props[i] = p
	}
	return props, nil
}

func decodeOne(r *bytes.Reader, version int32, models []string, leaves []uint16) (StaticProp, error) {
	var head struct {
		OX, OY, OZ float32
		PPitch, PYaw, PRoll float32
		ModelIndex uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return StaticProp{}, err
	}
	var mid struct {
		FirstLeaf uint16
		LeafCount uint16
		Solidity  uint8
		Flags     uint8
		Skin      int32
		MinFade   float32
		MaxFade   float32
		LOX, LOY, LOZ float32
	}
	if err := binary.Read(r, binary.LittleEndian, &mid); err != nil {
		return StaticProp{}, err
	}

	p := StaticProp{
		Model:          modelAt(models, head.ModelIndex),
		Origin:         vmath.New(float64(head.OX), float64(head.OY), float64(head.OZ)),
		Angles:         vmath.NewAngle(float64(head.PPitch), float64(head.PYaw), float64(head.PRoll)),
		Solidity:       mid.Solidity,
		Flags:          uint32(mid.Flags),
		Skin:           mid.Skin,
		MinFade:        mid.MinFade,
		MaxFade:        mid.MaxFade,
		LightingOrigin: vmath.New(float64(mid.LOX), float64(mid.LOY), float64(mid.LOZ)),
		FadeScale:      1,
		Tint:           [3]uint8{255, 255, 255},
		RenderFX:       255,
		Scaling:        1,
	}
	end := int(mid.FirstLeaf) + int(mid.LeafCount)
	if end > len(leaves) {
		end = len(leaves)
	}
	if int(mid.FirstLeaf) <= len(leaves) {
		p.Visleafs = append([]uint16(nil), leaves[mid.FirstLeaf:end]...)
	}

	if version >= 5 {
		var fadeScale float32
		if err := binary.Read(r, binary.LittleEndian, &fadeScale); err != nil {
			return p, err
		}
		p.FadeScale = fadeScale
	}

	if version == 6 || version == 7 {
		var dx struct{ Min, Max uint16 }
		if err := binary.Read(r, binary.LittleEndian, &dx); err != nil {
			return p, err
		}
		p.MinDXLevel, p.MaxDXLevel = dx.Min, dx.Max
	}

	if version >= 8 {
		var lvl struct{ MinCPU, MaxCPU, MinGPU, MaxGPU uint8 }
		if err := binary.Read(r, binary.LittleEndian, &lvl); err != nil {
			return p, err
		}
		p.MinCPULevel, p.MaxCPULevel = lvl.MinCPU, lvl.MaxCPU
		p.MinGPULevel, p.MaxGPULevel = lvl.MinGPU, lvl.MaxGPU
	}

	if version >= 7 {
		var tint struct{ R, G, B, FX uint8 }
		if err := binary.Read(r, binary.LittleEndian, &tint); err != nil {
			return p, err
		}
		p.Tint = [3]uint8{tint.R, tint.G, tint.B}
		p.RenderFX = tint.FX
	}

	if version >= 11 {
		// Unknown data, not documented by any known client; discarded.
		var unknown int32
		if err := binary.Read(r, binary.LittleEndian, &unknown); err != nil {
			return p, err
		}
	}

	if version >= 10 {
		var flagsHigh uint32
		if err := binary.Read(r, binary.LittleEndian, &flagsHigh); err != nil {
			return p, err
		}
		p.Flags |= flagsHigh << 8
	}

	switch {
	case version >= 11:
		var pad [4]byte
		if err := binary.Read(r, binary.LittleEndian, &pad); err != nil {
			return p, err
		}
		var scaling float32
		if err := binary.Read(r, binary.LittleEndian, &scaling); err != nil {
			return p, err
		}
		p.Scaling = scaling
	case version >= 9:
		var raw struct {
			Disable uint8
			Pad     [3]byte
		}
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return p, err
		}
		p.DisableOnXbox = raw.Disable != 0
	}

	return p, nil
}

func modelAt(models []string, i uint16) string {
	if int(i) >= len(models) {
		return ""
	}
	return models[i]
}

func trimNul(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Encode serializes props back to an sprp game lump payload at the given
// record version. The model-name table's order is the order each distinct
// name is first seen in props; it is deterministic within one call but not
// guaranteed stable across calls with reordered input.
func Encode(props []StaticProp, version int32) ([]byte, error) {
	if err := CheckVersion(version); err != nil {
		return nil, err
	}

	modelIndex := make(map[string]int)
	var models []string
	var leafTable []uint16
	leafOffsets := make([]int, len(props))

	for i, p := range props {
		if _, ok := modelIndex[p.Model]; !ok {
			modelIndex[p.Model] = len(models)
			models = append(models, p.Model)
		}
		leafOffsets[i] = len(leafTable)
		leafTable = append(leafTable, p.Visleafs...)
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, int32(len(models))); err != nil {
		return nil, err
	}
	for _, m := range models {
		var raw [modelNameSize]byte
		copy(raw[:], m)
		if _, err := buf.Write(raw[:]); err != nil {
			return nil, err
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, int32(len(leafTable))); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, leafTable); err != nil {
		return nil, err
	}

	if err := binary.Write(&buf, binary.LittleEndian, int32(len(props))); err != nil {
		return nil, err
	}

	for i, p := range props {
		if err := encodeOne(&buf, version, p, modelIndex[p.Model], leafOffsets[i]); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "write static prop %d", i)
		}
	}

	return buf.Bytes(), nil
}

func encodeOne(buf *bytes.Buffer, version int32, p StaticProp, modelIdx, leafOff int) error {
	head := struct {
		OX, OY, OZ          float32
		PPitch, PYaw, PRoll float32
		ModelIndex          uint16
	}{
		float32(p.Origin.X), float32(p.Origin.Y), float32(p.Origin.Z),
		float32(p.Angles.Pitch), float32(p.Angles.Yaw), float32(p.Angles.Roll),
		uint16(modelIdx),
	}
	if err := binary.Write(buf, binary.LittleEndian, head); err != nil {
		return err
	}

	mid := struct {
		FirstLeaf     uint16
		LeafCount     uint16
		Solidity      uint8
		Flags         uint8
		Skin          int32
		MinFade       float32
		MaxFade       float32
		LOX, LOY, LOZ float32
	}{
		uint16(leafOff), uint16(len(p.Visleafs)),
		p.Solidity, uint8(p.Flags & 0xFF),
		p.Skin, p.MinFade, p.MaxFade,
		float32(p.LightingOrigin.X), float32(p.LightingOrigin.Y), float32(p.LightingOrigin.Z),
	}
	if err := binary.Write(buf, binary.LittleEndian, mid); err != nil {
		return err
	}

	if version >= 5 {
		if err := binary.Write(buf, binary.LittleEndian, p.FadeScale); err != nil {
			return err
		}
	}

	if version == 6 || version == 7 {
		dx := struct{ Min, Max uint16 }{p.MinDXLevel, p.MaxDXLevel}
		if err := binary.Write(buf, binary.LittleEndian, dx); err != nil {
			return err
		}
	}

	if version >= 8 {
		lvl := struct{ MinCPU, MaxCPU, MinGPU, MaxGPU uint8 }{
			p.MinCPULevel, p.MaxCPULevel, p.MinGPULevel, p.MaxGPULevel,
		}
		if err := binary.Write(buf, binary.LittleEndian, lvl); err != nil {
			return err
		}
	}

	if version >= 7 {
		tint := struct{ R, G, B, FX uint8 }{p.Tint[0], p.Tint[1], p.Tint[2], p.RenderFX}
		if err := binary.Write(buf, binary.LittleEndian, tint); err != nil {
			return err
		}
	}

	if version >= 11 {
		// Unknown-data field; always written back as zero.
		if err := binary.Write(buf, binary.LittleEndian, int32(0)); err != nil {
			return err
		}
	}

	if version >= 10 {
		if err := binary.Write(buf, binary.LittleEndian, p.Flags>>8); err != nil {
			return err
		}
	}

	switch {
	case version >= 11:
		var pad [4]byte
		if err := binary.Write(buf, binary.LittleEndian, pad); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, p.Scaling); err != nil {
			return err
		}
	case version >= 9:
		raw := struct {
			Disable uint8
			Pad     [3]byte
		}{boolByte(p.DisableOnXbox), [3]byte{}}
		if err := binary.Write(buf, binary.LittleEndian, raw); err != nil {
			return err
		}
	}

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
