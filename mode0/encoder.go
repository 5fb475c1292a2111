package mode0

import (
	"errors"

	"github.com/bodgit/sneptile/tile"
)

// ErrTooManyColours is returned for a tile using more than two colours.
var ErrTooManyColours = errors.New("mode0: tile contains more than two colours")

// Rows is a Mode-0 pattern, one byte per row with the leftmost pixel in the
// most significant bit.
type Rows [tile.Height]byte

// Pattern packs r four rows to a word, with row 0 in the least significant
// byte of the first word and row 4 in the least significant byte of the
// second.
func (r Rows) Pattern() tile.Pattern {
	return tile.Pattern{
		uint32(r[3])<<24 | uint32(r[2])<<16 | uint32(r[1])<<8 | uint32(r[0]),
		uint32(r[7])<<24 | uint32(r[6])<<16 | uint32(r[5])<<8 | uint32(r[4]),
	}
}

// Encoder converts tiles to Mode-0 patterns, maintaining the colour table as
// it goes.
type Encoder struct {
	table  ColourTable
	strict bool
}

// NewEncoder returns a new Encoder. If strict is set, opaque pixels that are
// not in the reference palette are an error rather than being treated as
// colour 0.
func NewEncoder(strict bool) *Encoder {
	return &Encoder{
		strict: strict,
	}
}

// ColourTable returns the colour-table state.
func (e *Encoder) ColourTable() *ColourTable {
	return &e.table
}

func (e *Encoder) classify(t tile.Tile) (colours [tile.Pixels]Colour, need Pair, unmappable int, err error) {
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			c, ok := Classify(t.At(x, y))
			if !ok {
				if e.strict {
					return colours, Pair{}, 0, ErrUnmappableColour
				}
				unmappable++
			}
			if !need.add(c) {
				return colours, Pair{}, 0, ErrTooManyColours
			}
			colours[y*tile.Width+x] = c
		}
	}
	return
}

// EncodeTile encodes t, which must use no more than two colours. A pixel is
// set if it is the foreground colour of the group's pair.
func (e *Encoder) EncodeTile(t tile.Tile) (tile.Block, error) {
	colours, need, unmappable, err := e.classify(t)
	if err != nil {
		return tile.Block{}, err
	}

	pair, padding, closed := e.table.Place(need)
	fg, ok := pair.Foreground()

	var rows Rows
	if ok && !need.Blank() {
		for y := 0; y < tile.Height; y++ {
			for x := 0; x < tile.Width; x++ {
				if colours[y*tile.Width+x] == fg {
					rows[y] |= 0x80 >> x
				}
			}
		}
	}

	return tile.Block{
		Padding:     padding,
		Pattern:     rows.Pattern(),
		ColourTable: closed,
		Unmappable:  unmappable,
	}, nil
}

// Finalize closes the last colour-table entry if its group is incomplete.
func (e *Encoder) Finalize() (tile.Trailer, error) {
	var trailer tile.Trailer
	if b, ok := e.table.Flush(); ok {
		trailer.ColourTable = []byte{b}
	}
	return trailer, nil
}
