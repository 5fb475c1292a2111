package mode4

import (
	"github.com/bodgit/sneptile/tile"
)

const planes = 4

// Encoder converts tiles to Mode-4 patterns using a single palette for the
// lifetime of the Encoder.
type Encoder struct {
	palette Palette
}

// NewEncoder returns an Encoder whose palette starts with the preset colours,
// in order.
func NewEncoder(preset ...Colour) (*Encoder, error) {
	e := new(Encoder)
	for _, c := range preset {
		if _, err := e.palette.Add(c & 0x3f); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Palette returns the palette built so far.
func (e *Encoder) Palette() *Palette {
	return &e.palette
}

// EncodeTile encodes t as eight words, one per row, each holding the row's
// bit-planes in the order plane 3, 2, 1, 0 from the most significant byte.
// Transparent pixels use index 0 and do not add to the palette.
func (e *Encoder) EncodeTile(t tile.Tile) (tile.Block, error) {
	p := make(tile.Pattern, tile.Height)
	for y := 0; y < tile.Height; y++ {
		var line [planes]byte
		for x := 0; x < tile.Width; x++ {
			px := t.At(x, y)
			if px.Transparent() {
				continue
			}

			index, err := e.palette.Index(Quantize(px))
			if err != nil {
				return tile.Block{}, err
			}

			for i := 0; i < planes; i++ {
				if index&(1<<i) != 0 {
					line[i] |= 0x80 >> x
				}
			}
		}
		p[y] = uint32(line[3])<<24 | uint32(line[2])<<16 | uint32(line[1])<<8 | uint32(line[0])
	}
	return tile.Block{Pattern: p}, nil
}

// Finalize returns the frozen palette in both Master System and Game Gear
// form.
func (e *Encoder) Finalize() (tile.Trailer, error) {
	colours := make([]uint8, e.palette.Len())
	for i, c := range e.palette.colours {
		colours[i] = uint8(c)
	}
	return tile.Trailer{
		Palette:  colours,
		GameGear: e.palette.GameGear(),
	}, nil
}
