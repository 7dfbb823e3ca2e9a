package bsp

// Lump is one of the 64 byte regions addressed by the container's
// directory. Version is the per-lump format version, independent of the
// file's own version. Ident is an opaque 4-byte tag preserved byte for
// byte; most lumps leave it zeroed.
type Lump struct {
	Type    LumpID
	Version int32
	Ident   [4]byte
	Data    []byte
}

// BspFile is the top-level, fully decoded container: a fixed header, 64
// lumps in numeric order, and the reconstructed game lump directory. All
// byte blobs are owned by this struct; decoded views (static props,
// entities, the vis tree) are independent copies that do not alias back
// into it.
type BspFile struct {
	Filename    string
	Version     int32
	MapRevision int32
	Lumps       [NumLumps]Lump
	GameLumps   *GameLumpList
}

// Lump returns the lump at id, by value.
func (b *BspFile) Lump(id LumpID) Lump { return b.Lumps[id] }

// SetLumpData replaces the byte payload of the lump at id, leaving its
// version and ident untouched.
func (b *BspFile) SetLumpData(id LumpID, data []byte) { b.Lumps[id].Data = data }
