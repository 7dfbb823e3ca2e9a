package bsp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

// decodeGameLumps parses the nested directory living inside the GAME_LUMP
// lump's bytes and populates bf.GameLumps. The directory's offsets are
// absolute positions in the file, so decoding needs the open file, not just
// the GAME_LUMP lump's own byte slice.
func decodeGameLumps(bf *BspFile, r io.ReaderAt) error {
	raw := bf.Lumps[LumpGameLump].Data
	if len(raw) == 0 {
		return nil
	}

	br := bytes.NewReader(raw)
	var count int32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return bsperr.Wrap(bsperr.IO, err, "read game lump count")
	}

	type rawEntry struct {
		ID      [4]byte
		Flags   uint16
		Version uint16
		FileOff int32
		FileLen int32
	}

	for i := int32(0); i < count; i++ {
		var e rawEntry
		if err := binary.Read(br, binary.LittleEndian, &e); err != nil {
			return bsperr.Wrap(bsperr.IO, err, "read game lump directory entry %d", i)
		}
		data := make([]byte, e.FileLen)
		if e.FileLen > 0 {
			if _, err := r.ReadAt(data, int64(e.FileOff)); err != nil && err != io.EOF {
				return bsperr.Wrap(bsperr.IO, err, "read game lump %q", reverseID(e.ID))
			}
		}
		bf.GameLumps.Set(GameLump{
			ID:      reverseID(e.ID),
			Flags:   e.Flags,
			Version: e.Version,
			Data:    data,
		})
	}
	return nil
}

// encodeGameLumps writes the GAME_LUMP region: the count, N directory
// entries (with file_off deferred until each data block's position is
// known), then the data blocks themselves, contiguous and in directory
// order.
func encodeGameLumps(bf *BspFile, w *deferredWriter) error {
	lumps := bf.GameLumps.All()

	if err := w.WriteLE(int32(len(lumps))); err != nil {
		return bsperr.Wrap(bsperr.IO, err, "write game lump count")
	}

	type dirHead struct {
		ID      [4]byte
		Flags   uint16
		Version uint16
	}
	for i, g := range lumps {
		key := gameLumpKey(i)
		if err := w.WriteLE(dirHead{ID: reverseID(g.ID), Flags: g.Flags, Version: g.Version}); err != nil {
			return bsperr.Wrap(bsperr.IO, err, "write game lump directory head %q", g.ID)
		}
		w.ReserveOffset(key)
		if err := w.WriteLE(int32(len(g.Data))); err != nil {
			return bsperr.Wrap(bsperr.IO, err, "write game lump length %q", g.ID)
		}
	}
	for i, g := range lumps {
		pos := w.Pos()
		if _, err := w.Write(g.Data); err != nil {
			return bsperr.Wrap(bsperr.IO, err, "write game lump data %q", g.ID)
		}
		w.SetOffset(gameLumpKey(i), int32(pos))
	}
	return nil
}

func gameLumpKey(i int) string { return fmt.Sprintf("gamelump:%d", i) }

// reverseID flips the 4 id bytes, used both directions: the id is stored
// byte-reversed on disk relative to its in-memory form.
func reverseID(id [4]byte) [4]byte {
	return [4]byte{id[3], id[2], id[1], id[0]}
}
