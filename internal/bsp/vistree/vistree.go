// Package vistree reconstructs the BSP visibility tree from the three flat
// arrays (PLANES, NODES, LEAFS) that describe it. The tree itself is not
// stored as pointers on disk: each node names its children by index, with
// negative indices redirecting into the leaf array instead of the node
// array.
package vistree

import (
	"bytes"
	"encoding/binary"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
	"github.com/vortigaunt/srcbsp/internal/vmath"
)

const (
	planeRecordSize = 20 // <ffffi
	nodeRecordSize  = 32 // <iii6hHHh2x
	leafRecordSize  = 32 // <ihh6h4Hh2x (plus 26x on old versions, folded in by the caller)
	oldAmbientSize  = 26
)

// Plane is one splitting plane referenced by node index.
type Plane struct {
	Normal vmath.Vec
	Dist   float32
}

// Child is a tagged reference to either a child node or a leaf, mirroring
// the sentinel encoding used on disk: a negative node-array index redirects
// to a leaf.
type Child struct {
	IsLeaf bool
	Index  int // index into Tree.Nodes or Tree.Leaves, depending on IsLeaf
}

// Node is one binary split of space.
type Node struct {
	PlaneIndex int
	Neg, Pos   Child
	Min, Max   [3]int16
	FirstFace  uint16
	NumFaces   uint16
	Area       int16
}

// Leaf is a terminal region of space.
type Leaf struct {
	Contents      int32
	Cluster       int16
	Area          int16 // top 9 bits of area_and_flags
	Flags         int16 // bottom 7 bits of area_and_flags
	Min, Max      [3]int16
	FirstLeafFace uint16
	NumLeafFaces  uint16
	FirstBrush    uint16
	NumBrushes    uint16
	WaterID       int16
}

// Tree is the fully reconstructed visibility tree: flat node and leaf
// arrays plus the root reference, matching the source PLANES/NODES/LEAFS
// arrays index for index (no compaction or reordering).
type Tree struct {
	Planes []Plane
	Nodes  []Node
	Leaves []Leaf
	Root   Child
}

// RootNode returns t.Nodes[t.Root.Index] and true if the root is a node, or the
// zero Node and false if the tree is a single leaf.
func (t *Tree) RootNode() (Node, bool) {
	if t.Root.IsLeaf {
		return Node{}, false
	}
	return t.Nodes[t.Root.Index], true
}

// Decode parses the PLANES, NODES and LEAFS lump payloads into a Tree.
// fileVersion selects the LEAFS record layout: files at version 19 or
// earlier append a 26-byte ambient lighting block to each record, which is
// skipped; newer files do not carry it.
func Decode(planesData, nodesData, leafsData []byte, fileVersion int32) (*Tree, error) {
	planes, err := decodePlanes(planesData)
	if err != nil {
		return nil, err
	}
	nodes, err := decodeNodes(nodesData)
	if err != nil {
		return nil, err
	}
	leafRecSize := leafRecordSize
	if fileVersion <= 19 {
		leafRecSize += oldAmbientSize
	}
	leaves, err := decodeLeaves(leafsData, leafRecSize)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, bsperr.New(bsperr.IO, "vis tree has no nodes")
	}

	return &Tree{
		Planes: planes,
		Nodes:  nodes,
		Leaves: leaves,
		Root:   Child{IsLeaf: false, Index: 0},
	}, nil
}

func decodePlanes(data []byte) ([]Plane, error) {
	if len(data)%planeRecordSize != 0 {
		return nil, bsperr.New(bsperr.IO, "PLANES length %d is not a multiple of %d", len(data), planeRecordSize)
	}
	n := len(data) / planeRecordSize
	planes := make([]Plane, n)
	r := bytes.NewReader(data)
	for i := 0; i < n; i++ {
		var rec struct {
			NX, NY, NZ, Dist float32
			Type             int32
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "read plane %d", i)
		}
		planes[i] = Plane{
			Normal: vmath.New(float64(rec.NX), float64(rec.NY), float64(rec.NZ)),
			Dist:   rec.Dist,
		}
	}
	return planes, nil
}

func decodeNodes(data []byte) ([]Node, error) {
	if len(data)%nodeRecordSize != 0 {
		return nil, bsperr.New(bsperr.IO, "NODES length %d is not a multiple of %d", len(data), nodeRecordSize)
	}
	n := len(data) / nodeRecordSize
	nodes := make([]Node, n)
	r := bytes.NewReader(data)
	for i := 0; i < n; i++ {
		var rec struct {
			PlaneIndex         int32
			NegChild, PosChild int32
			MinX, MinY, MinZ   int16
			MaxX, MaxY, MaxZ   int16
			FirstFace          uint16
			NumFaces           uint16
			Area               int16
			_                  [2]byte
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "read node %d", i)
		}
		nodes[i] = Node{
			PlaneIndex: int(rec.PlaneIndex),
			Neg:        childFor(rec.NegChild),
			Pos:        childFor(rec.PosChild),
			Min:        [3]int16{rec.MinX, rec.MinY, rec.MinZ},
			Max:        [3]int16{rec.MaxX, rec.MaxY, rec.MaxZ},
			FirstFace:  rec.FirstFace,
			NumFaces:   rec.NumFaces,
			Area:       rec.Area,
		}
	}
	return nodes, nil
}

func decodeLeaves(data []byte, recSize int) ([]Leaf, error) {
	if len(data)%recSize != 0 {
		return nil, bsperr.New(bsperr.IO, "LEAFS length %d is not a multiple of %d", len(data), recSize)
	}
	n := len(data) / recSize
	leaves := make([]Leaf, n)
	for i := 0; i < n; i++ {
		chunk := data[i*recSize : (i+1)*recSize]
		r := bytes.NewReader(chunk[:leafRecordSize])
		var rec struct {
			Contents       int32
			Cluster        int16
			AreaAndFlags   uint16
			MinX, MinY, MinZ int16
			MaxX, MaxY, MaxZ int16
			FirstLeafFace  uint16
			NumLeafFaces   uint16
			FirstBrush     uint16
			NumBrushes     uint16
			WaterID        int16
			_              [2]byte
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "read leaf %d", i)
		}
		leaves[i] = Leaf{
			Contents:      rec.Contents,
			Cluster:       rec.Cluster,
			Area:          int16(rec.AreaAndFlags >> 7),
			Flags:         int16(rec.AreaAndFlags & 0x7F),
			Min:           [3]int16{rec.MinX, rec.MinY, rec.MinZ},
			Max:           [3]int16{rec.MaxX, rec.MaxY, rec.MaxZ},
			FirstLeafFace: rec.FirstLeafFace,
			NumLeafFaces:  rec.NumLeafFaces,
			FirstBrush:    rec.FirstBrush,
			NumBrushes:    rec.NumBrushes,
			WaterID:       rec.WaterID,
		}
	}
	return leaves, nil
}

// childFor maps a raw NODES child index to a tagged Child: negative values
// redirect into the leaf array at -1-c, non-negative values are a node
// index directly.
func childFor(c int32) Child {
	if c < 0 {
		return Child{IsLeaf: true, Index: int(-1 - c)}
	}
	return Child{IsLeaf: false, Index: int(c)}
}

// rawChildFor is the inverse of childFor, used when re-encoding.
func rawChildFor(c Child) int32 {
	if c.IsLeaf {
		return -1 - int32(c.Index)
	}
	return int32(c.Index)
}

// Encode serializes t back to PLANES, NODES and LEAFS lump bytes.
// fileVersion selects the LEAFS record layout exactly as Decode does; on
// files at version 19 or earlier the extra 26-byte block is written as
// zero, since ambient lighting data for the old format isn't modeled here.
func Encode(t *Tree, fileVersion int32) (planesData, nodesData, leafsData []byte, err error) {
	var pb bytes.Buffer
	for i, p := range t.Planes {
		rec := struct {
			NX, NY, NZ, Dist float32
			Type             int32
		}{float32(p.Normal.X), float32(p.Normal.Y), float32(p.Normal.Z), p.Dist, 0}
		if err := binary.Write(&pb, binary.LittleEndian, rec); err != nil {
			return nil, nil, nil, bsperr.Wrap(bsperr.IO, err, "write plane %d", i)
		}
	}

	var nb bytes.Buffer
	for i, n := range t.Nodes {
		rec := struct {
			PlaneIndex         int32
			NegChild, PosChild int32
			MinX, MinY, MinZ   int16
			MaxX, MaxY, MaxZ   int16
			FirstFace          uint16
			NumFaces           uint16
			Area               int16
			_                  [2]byte
		}{
			PlaneIndex: int32(n.PlaneIndex),
			NegChild:   rawChildFor(n.Neg),
			PosChild:   rawChildFor(n.Pos),
			MinX:       n.Min[0], MinY: n.Min[1], MinZ: n.Min[2],
			MaxX: n.Max[0], MaxY: n.Max[1], MaxZ: n.Max[2],
			FirstFace: n.FirstFace,
			NumFaces:  n.NumFaces,
			Area:      n.Area,
		}
		if err := binary.Write(&nb, binary.LittleEndian, rec); err != nil {
			return nil, nil, nil, bsperr.Wrap(bsperr.IO, err, "write node %d", i)
		}
	}

	var lb bytes.Buffer
	for i, l := range t.Leaves {
		areaAndFlags := uint16(l.Area)<<7 | uint16(l.Flags)&0x7F
		rec := struct {
			Contents         int32
			Cluster          int16
			AreaAndFlags     uint16
			MinX, MinY, MinZ int16
			MaxX, MaxY, MaxZ int16
			FirstLeafFace    uint16
			NumLeafFaces     uint16
			FirstBrush       uint16
			NumBrushes       uint16
			WaterID          int16
			_                [2]byte
		}{
			Contents:      l.Contents,
			Cluster:       l.Cluster,
			AreaAndFlags:  areaAndFlags,
			MinX:          l.Min[0], MinY: l.Min[1], MinZ: l.Min[2],
			MaxX: l.Max[0], MaxY: l.Max[1], MaxZ: l.Max[2],
			FirstLeafFace: l.FirstLeafFace,
			NumLeafFaces:  l.NumLeafFaces,
			FirstBrush:    l.FirstBrush,
			NumBrushes:    l.NumBrushes,
			WaterID:       l.WaterID,
		}
		if err := binary.Write(&lb, binary.LittleEndian, rec); err != nil {
			return nil, nil, nil, bsperr.Wrap(bsperr.IO, err, "write leaf %d", i)
		}
		if fileVersion <= 19 {
			var pad [oldAmbientSize]byte
			if _, err := lb.Write(pad[:]); err != nil {
				return nil, nil, nil, bsperr.Wrap(bsperr.IO, err, "write leaf %d ambient pad", i)
			}
		}
	}

	return pb.Bytes(), nb.Bytes(), lb.Bytes(), nil
}
