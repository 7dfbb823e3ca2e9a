package vistree

import (
	"testing"

	"github.com/vortigaunt/srcbsp/internal/vmath"
)

func sampleTree() *Tree {
	return &Tree{
		Planes: []Plane{
			{Normal: vmath.New(1, 0, 0), Dist: 0},
			{Normal: vmath.New(0, 1, 0), Dist: 128},
		},
		Nodes: []Node{
			{
				PlaneIndex: 0,
				Neg:        Child{IsLeaf: false, Index: 1},
				Pos:        Child{IsLeaf: true, Index: 0},
				Min:        [3]int16{-100, -100, -100},
				Max:        [3]int16{100, 100, 100},
			},
			{
				PlaneIndex: 1,
				Neg:        Child{IsLeaf: true, Index: 1},
				Pos:        Child{IsLeaf: true, Index: 2},
				Min:        [3]int16{-100, -100, -100},
				Max:        [3]int16{100, 100, 100},
			},
		},
		Leaves: []Leaf{
			{Contents: -1, Cluster: 0, Area: 1, Flags: 3},
			{Contents: -2, Cluster: 1, Area: 2, Flags: 5},
			{Contents: -1, Cluster: 2, Area: 1, Flags: 0},
		},
		Root: Child{IsLeaf: false, Index: 0},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tree := sampleTree()
	planesData, nodesData, leafsData, err := Encode(tree, 20)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(planesData, nodesData, leafsData, 20)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got.Nodes) != len(tree.Nodes) || len(got.Leaves) != len(tree.Leaves) {
		t.Fatalf("node/leaf counts changed: nodes %d/%d, leaves %d/%d",
			len(got.Nodes), len(tree.Nodes), len(got.Leaves), len(tree.Leaves))
	}
	for i, n := range tree.Nodes {
		g := got.Nodes[i]
		if g.Neg != n.Neg || g.Pos != n.Pos {
			t.Errorf("node %d children = (%v,%v), want (%v,%v)", i, g.Neg, g.Pos, n.Neg, n.Pos)
		}
	}
	for i, l := range tree.Leaves {
		g := got.Leaves[i]
		if g.Area != l.Area || g.Flags != l.Flags {
			t.Errorf("leaf %d area/flags = (%d,%d), want (%d,%d)", i, g.Area, g.Flags, l.Area, l.Flags)
		}
	}
}

func TestRootLinksToFirstNode(t *testing.T) {
	tree := sampleTree()
	planesData, nodesData, leafsData, err := Encode(tree, 20)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(planesData, nodesData, leafsData, 20)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Root.IsLeaf || got.Root.Index != 0 {
		t.Fatalf("Root = %v, want node 0", got.Root)
	}
	root, ok := got.RootNode()
	if !ok {
		t.Fatal("RootNode() reported leaf root for a node-rooted tree")
	}
	if root.Neg.IsLeaf {
		t.Fatalf("NODES[0].Neg should point at node 1, not a leaf, got %v", root.Neg)
	}
}

func TestOldVersionAmbientPadding(t *testing.T) {
	tree := sampleTree()
	_, _, leafsOld, err := Encode(tree, 19)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, _, leafsNew, err := Encode(tree, 20)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	wantOldSize := len(tree.Leaves) * (leafRecordSize + oldAmbientSize)
	wantNewSize := len(tree.Leaves) * leafRecordSize
	if len(leafsOld) != wantOldSize {
		t.Errorf("old-version LEAFS size = %d, want %d", len(leafsOld), wantOldSize)
	}
	if len(leafsNew) != wantNewSize {
		t.Errorf("new-version LEAFS size = %d, want %d", len(leafsNew), wantNewSize)
	}
}

func TestChildForSentinel(t *testing.T) {
	c := childFor(-1)
	if !c.IsLeaf || c.Index != 0 {
		t.Fatalf("childFor(-1) = %v, want leaf 0", c)
	}
	c2 := childFor(5)
	if c2.IsLeaf || c2.Index != 5 {
		t.Fatalf("childFor(5) = %v, want node 5", c2)
	}
}
