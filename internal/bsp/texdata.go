package bsp

import (
	"bytes"
	"encoding/binary"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

// maxTexStringLen bounds how far to scan for a terminating NUL when
// decoding a single string out of TEXDATA_STRING_DATA.
const maxTexStringLen = 128

// TextureNames decodes TEXDATA_STRING_TABLE (a flat array of int32 offsets)
// and TEXDATA_STRING_DATA (a concatenation of NUL-terminated ASCII
// strings) into the ordered list of texture names they describe.
func (b *BspFile) TextureNames() ([]string, error) {
	table := b.Lumps[LumpTexDataStringTable].Data
	data := b.Lumps[LumpTexDataStringData].Data

	if len(table)%4 != 0 {
		return nil, bsperr.New(bsperr.IO, "TEXDATA_STRING_TABLE length %d is not a multiple of 4", len(table))
	}
	count := len(table) / 4
	names := make([]string, count)
	for i := 0; i < count; i++ {
		offset := int32(binary.LittleEndian.Uint32(table[i*4:]))
		name, err := readTexString(data, offset)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

func readTexString(data []byte, offset int32) (string, error) {
	if offset < 0 || int(offset) > len(data) {
		return "", bsperr.New(bsperr.BadTextureString, "offset %d out of range", offset)
	}
	end := int(offset) + maxTexStringLen
	if end > len(data) {
		end = len(data)
	}
	window := data[offset:end]
	if i := bytes.IndexByte(window, 0); i >= 0 {
		return string(window[:i]), nil
	}
	return "", bsperr.New(bsperr.BadTextureString, "no NUL within %d bytes of offset %d", maxTexStringLen, offset)
}
