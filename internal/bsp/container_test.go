package bsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

func newEmptyBsp(version int32) *BspFile {
	bf := &BspFile{
		Version:     version,
		MapRevision: 1,
		GameLumps:   NewGameLumpList(),
	}
	return bf
}

func TestSaveOpenRoundTripEmpty(t *testing.T) {
	bf := newEmptyBsp(20)
	bf.Lumps[LumpEntities].Data = []byte("{\n\"classname\" \"worldspawn\"\n}\n\x00")

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bsp")
	if err := bf.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.Version != 20 {
		t.Fatalf("Version = %d, want 20", got.Version)
	}
	if got.MapRevision != 1 {
		t.Fatalf("MapRevision = %d, want 1", got.MapRevision)
	}
	if string(got.Lumps[LumpEntities].Data) != string(bf.Lumps[LumpEntities].Data) {
		t.Fatalf("entities lump mismatch: %q", got.Lumps[LumpEntities].Data)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bsp")
	if err := os.WriteFile(path, []byte("XXXX\x14\x00\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	if kind, _ := bsperr.KindOf(err); kind != bsperr.NotBspFile {
		t.Fatalf("kind = %v, want NotBspFile", kind)
	}
}

func TestOpenExpectVersionMismatch(t *testing.T) {
	bf := newEmptyBsp(21)
	dir := t.TempDir()
	path := filepath.Join(dir, "v21.bsp")
	if err := bf.Save(path); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path, ExpectVersion(20))
	if err == nil {
		t.Fatal("expected VersionMismatch error")
	}
	if kind, _ := bsperr.KindOf(err); kind != bsperr.VersionMismatch {
		t.Fatalf("kind = %v, want VersionMismatch", kind)
	}
}

func TestGameLumpRoundTripPreservesOrderAndID(t *testing.T) {
	bf := newEmptyBsp(20)
	bf.GameLumps.Set(GameLump{ID: [4]byte{'s', 'p', 'r', 'p'}, Version: 10, Data: []byte("propdata")})
	bf.GameLumps.Set(GameLump{ID: [4]byte{'d', 'e', 't', 'l'}, Version: 4, Data: []byte("detaildata")})

	dir := t.TempDir()
	path := filepath.Join(dir, "glumps.bsp")
	if err := bf.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	all := got.GameLumps.All()
	if len(all) != 2 {
		t.Fatalf("len(GameLumps) = %d, want 2", len(all))
	}
	if string(all[0].ID[:]) != "sprp" || string(all[1].ID[:]) != "detl" {
		t.Fatalf("game lump order/id not preserved: %+v", all)
	}
	g, ok := got.GameLumps.Get([4]byte{'s', 'p', 'r', 'p'})
	if !ok || string(g.Data) != "propdata" {
		t.Fatalf("sprp lump = %+v, %v", g, ok)
	}
}

func TestPakfileLumpWrittenLast(t *testing.T) {
	bf := newEmptyBsp(20)
	bf.Lumps[LumpPakfile].Data = []byte("PK\x03\x04fakezipbytes")
	bf.Lumps[LumpPlanes].Data = []byte("planedata")

	dir := t.TempDir()
	path := filepath.Join(dir, "pak.bsp")
	if err := bf.Save(path); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !hasSuffixBytes(raw, bf.Lumps[LumpPakfile].Data) {
		t.Fatal("PAKFILE lump bytes should be the last thing written to the file")
	}
}

func hasSuffixBytes(data, suffix []byte) bool {
	if len(suffix) > len(data) {
		return false
	}
	return string(data[len(data)-len(suffix):]) == string(suffix)
}
