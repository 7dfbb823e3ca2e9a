// Package bsp implements the outer VBSP container: the fixed header, the
// 64-entry lump directory, and the nested GAME_LUMP directory. Individual
// lump formats (static props, entities, the vis tree, texture names) are
// decoded on demand by their own sub-packages/files; this file only moves
// bytes in and out of the right places.
package bsp

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

var magic = [4]byte{'V', 'B', 'S', 'P'}

const (
	headerSize   = 8
	dirEntrySize = 16
)

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	expectVersion *int32
}

// ExpectVersion asserts the file's version must equal v; a mismatch fails
// with bsperr.VersionMismatch instead of silently adopting the file's
// version.
func ExpectVersion(v int32) OpenOption {
	return func(o *openOptions) { o.expectVersion = &v }
}

// Open reads filename in full: the header, the 64-entry directory, every
// lump's payload, and the nested game lump directory.
func Open(filename string, opts ...OpenOption) (*BspFile, error) {
	var cfg openOptions
	for _, o := range opts {
		o(&cfg)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "open %s", filename)
	}
	defer f.Close()

	var hdr struct {
		Magic   [4]byte
		Version int32
	}
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read header of %s", filename)
	}
	if hdr.Magic != magic {
		return nil, bsperr.New(bsperr.NotBspFile, "%s: bad magic %q", filename, hdr.Magic)
	}
	if cfg.expectVersion != nil && *cfg.expectVersion != hdr.Version {
		return nil, bsperr.New(bsperr.VersionMismatch, "%s: expected version %d, got %d", filename, *cfg.expectVersion, hdr.Version)
	}

	type dirEntry struct {
		Offset  int32
		Length  int32
		Version int32
		Ident   [4]byte
	}
	var dir [NumLumps]dirEntry
	if err := binary.Read(f, binary.LittleEndian, &dir); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read lump directory of %s", filename)
	}

	var mapRevision int32
	if err := binary.Read(f, binary.LittleEndian, &mapRevision); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "read map revision of %s", filename)
	}

	bf := &BspFile{
		Filename:    filename,
		Version:     hdr.Version,
		MapRevision: mapRevision,
		GameLumps:   NewGameLumpList(),
	}

	for i := 0; i < NumLumps; i++ {
		e := dir[i]
		data := make([]byte, e.Length)
		if e.Length > 0 {
			if _, err := f.ReadAt(data, int64(e.Offset)); err != nil && err != io.EOF {
				return nil, bsperr.Wrap(bsperr.IO, err, "read lump %s of %s", LumpID(i), filename)
			}
		}
		bf.Lumps[i] = Lump{Type: LumpID(i), Version: e.Version, Ident: e.Ident, Data: data}
	}

	if err := decodeGameLumps(bf, f); err != nil {
		return nil, err
	}
	// The raw GAME_LUMP bytes describe absolute offsets into the file being
	// read; once the directory is decoded into GameLumps, those offsets are
	// no longer meaningful (writing rebuilds the region from scratch), so
	// the blob is dropped rather than carried as opaque data.
	bf.Lumps[LumpGameLump].Data = nil

	return bf, nil
}

// Save serializes bf to filename (bf.Filename if empty) using atomic
// replacement: the new content is written to a sibling temp file, fsynced,
// then renamed over the destination. On any failure the temp file is
// removed and the destination is left untouched.
func (b *BspFile) Save(filename string) (err error) {
	if filename == "" {
		filename = b.Filename
	}
	data, err := b.encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".bsp-tmp-*")
	if err != nil {
		return bsperr.Wrap(bsperr.IO, err, "create temp file for %s", filename)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return bsperr.Wrap(bsperr.IO, err, "write %s", tmpName)
	}
	if err = tmp.Sync(); err != nil {
		return bsperr.Wrap(bsperr.IO, err, "sync %s", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return bsperr.Wrap(bsperr.IO, err, "close %s", tmpName)
	}
	if err = os.Rename(tmpName, filename); err != nil {
		return bsperr.Wrap(bsperr.IO, err, "rename %s to %s", tmpName, filename)
	}
	return nil
}

// writeOrder returns the lump write order: numeric order, with PAKFILE
// moved to the very end. The BSP directory finds every lump by
// offset/length regardless of byte position, but a ZIP reader locates its
// central directory by scanning backward from EOF - so PAKFILE has to be
// the last thing in the file for standard ZIP tools to open it directly.
func writeOrder() []LumpID {
	order := make([]LumpID, 0, NumLumps)
	for i := 0; i < NumLumps; i++ {
		if LumpID(i) != LumpPakfile {
			order = append(order, LumpID(i))
		}
	}
	return append(order, LumpPakfile)
}

func (b *BspFile) encode() ([]byte, error) {
	w := newDeferredWriter()

	if err := w.WriteLE(magic); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "write magic")
	}
	if err := w.WriteLE(b.Version); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "write version")
	}

	type dirEntry struct {
		Version int32
		Ident   [4]byte
	}
	for i := 0; i < NumLumps; i++ {
		key := dirKey(LumpID(i))
		w.ReserveOffsetLength(key)
		if err := w.WriteLE(dirEntry{Version: b.Lumps[i].Version, Ident: b.Lumps[i].Ident}); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "write directory entry %s", LumpID(i))
		}
	}
	if err := w.WriteLE(b.MapRevision); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "write map revision")
	}

	for _, id := range writeOrder() {
		start := w.Pos()
		if id == LumpGameLump {
			if err := encodeGameLumps(b, w); err != nil {
				return nil, err
			}
		} else {
			if _, err := w.Write(b.Lumps[id].Data); err != nil {
				return nil, bsperr.Wrap(bsperr.IO, err, "write lump %s", id)
			}
		}
		end := w.Pos()
		w.SetOffsetLength(dirKey(id), int32(start), int32(end-start))
	}

	return w.Bytes(), nil
}

func dirKey(id LumpID) string { return fmt.Sprintf("dir:%d", id) }
