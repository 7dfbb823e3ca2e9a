package bsp

// GameLump is one entry of the secondary directory nested inside the
// GAME_LUMP lump (#35): a game-specific sub-region keyed by a 4-byte id
// (e.g. "sprp" for static props).
type GameLump struct {
	ID      [4]byte
	Flags   uint16
	Version uint16
	Data    []byte
}

// GameLumpList is an order-preserving map from 4-byte game lump id to
// GameLump. Go's builtin map has no defined iteration order, but the spec
// requires write order to equal read order (insertion order becomes
// directory order) - so entries live in a slice, with an index for O(1)
// lookup by id.
type GameLumpList struct {
	order []GameLump
	index map[[4]byte]int
}

// NewGameLumpList returns an empty, ready-to-use list.
func NewGameLumpList() *GameLumpList {
	return &GameLumpList{index: make(map[[4]byte]int)}
}

// Get returns the game lump for id, and whether it was present.
func (l *GameLumpList) Get(id [4]byte) (GameLump, bool) {
	i, ok := l.index[id]
	if !ok {
		return GameLump{}, false
	}
	return l.order[i], true
}

// Set inserts a new game lump or overwrites an existing one in place
// (preserving its original position).
func (l *GameLumpList) Set(g GameLump) {
	if i, ok := l.index[g.ID]; ok {
		l.order[i] = g
		return
	}
	l.index[g.ID] = len(l.order)
	l.order = append(l.order, g)
}

// Delete removes a game lump by id, if present.
func (l *GameLumpList) Delete(id [4]byte) {
	i, ok := l.index[id]
	if !ok {
		return
	}
	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.order); j++ {
		l.index[l.order[j].ID] = j
	}
}

// All returns the game lumps in directory order. The returned slice is a
// copy of the header structs; Data slices are shared, not copied.
func (l *GameLumpList) All() []GameLump {
	out := make([]GameLump, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of game lumps.
func (l *GameLumpList) Len() int { return len(l.order) }
