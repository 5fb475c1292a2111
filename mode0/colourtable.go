package mode0

// GroupSize is the number of consecutive patterns sharing a colour-table
// entry.
const GroupSize = 8

// Pair is a colour-table entry. The first colour is bit 0 (background) and
// the second is bit 1 (foreground).
type Pair struct {
	c [2]Colour
	n int
}

// NewPair returns a Pair of the given colours, which must number two or
// fewer.
func NewPair(colours ...Colour) Pair {
	var p Pair
	for _, c := range colours {
		p.add(c)
	}
	return p
}

// Len returns the number of colours assigned.
func (p Pair) Len() int {
	return p.n
}

// Has reports whether c is one of the assigned colours.
func (p Pair) Has(c Colour) bool {
	for _, pc := range p.c[:p.n] {
		if pc == c {
			return true
		}
	}
	return false
}

func (p *Pair) add(c Colour) bool {
	if p.Has(c) {
		return true
	}
	if p.n == len(p.c) {
		return false
	}
	p.c[p.n] = c
	p.n++
	return true
}

// Foreground returns the colour in bit position 1, if assigned.
func (p Pair) Foreground() (Colour, bool) {
	return p.c[1], p.n == 2
}

// Compatible reports whether a tile needing the colours of t can join a
// group already using p without the group needing more than two colours.
func (p Pair) Compatible(t Pair) bool {
	switch p.n {
	case 0:
		return true
	case 1:
		return t.n <= 1 || t.Has(p.c[0])
	default:
		for _, c := range t.c[:t.n] {
			if !p.Has(c) {
				return false
			}
		}
		return true
	}
}

// Blank reports whether p holds nothing but the transparent colour.
func (p Pair) Blank() bool {
	return p.n == 1 && p.c[0] == Transparent
}

// Merge adds any colours of t not already in p. Existing colours keep their
// bit positions.
func (p *Pair) Merge(t Pair) {
	for _, c := range t.c[:t.n] {
		p.add(c)
	}
}

// Byte encodes p as a colour-table byte, background in the low nibble and
// foreground in the high nibble. Unassigned positions are 0.
func (p Pair) Byte() byte {
	return byte(p.c[0])&0x0f | byte(p.c[1])<<4
}

// ColourTable tracks the entry for the group of patterns currently being
// filled.
type ColourTable struct {
	pair Pair
	pos  int
}

// Position returns the number of patterns placed in the open group.
func (ct *ColourTable) Position() int {
	return ct.pos
}

// Place adds a tile needing the colours of t to the open group. If t is not
// compatible, the open group is closed early: padding is the number of blank
// patterns needed to fill it and its entry is the first of closed. The tile
// then starts a new group. The returned pair is the one the tile must be
// packed with. If the tile fills its group, that entry is closed too.
//
// A fully transparent tile fits any group and leaves its pair untouched.
func (ct *ColourTable) Place(t Pair) (pair Pair, padding int, closed []byte) {
	if t.Blank() {
		pair = ct.pair
		if ct.pos++; ct.pos == GroupSize {
			closed = append(closed, ct.pair.Byte())
			ct.reset()
		}
		return pair, 0, closed
	}

	if !ct.pair.Compatible(t) {
		if ct.pos > 0 {
			padding = GroupSize - ct.pos
			closed = append(closed, ct.pair.Byte())
		}
		ct.reset()
	}

	ct.pair.Merge(t)
	pair = ct.pair

	if ct.pos++; ct.pos == GroupSize {
		closed = append(closed, ct.pair.Byte())
		ct.reset()
	}

	return pair, padding, closed
}

// Flush closes a partially filled group, returning its entry.
func (ct *ColourTable) Flush() (byte, bool) {
	if ct.pos == 0 {
		return 0, false
	}
	b := ct.pair.Byte()
	ct.reset()
	return b, true
}

func (ct *ColourTable) reset() {
	ct.pair, ct.pos = Pair{}, 0
}
