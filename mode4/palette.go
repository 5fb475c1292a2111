package mode4

import "errors"

// MaxColours is the size of the hardware palette.
const MaxColours = 16

// ErrPaletteOverflow is returned when a colour would need a 17th palette
// entry.
var ErrPaletteOverflow = errors.New("mode4: palette exceeds 16 colours")

// Palette is the ordered set of colours in use. The position of a colour is
// its index in the pattern data, so colours are never removed or reordered.
type Palette struct {
	colours []Colour
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colours)
}

// Add appends c without checking whether it is already present and returns
// its index.
func (p *Palette) Add(c Colour) (uint8, error) {
	if len(p.colours) == MaxColours {
		return 0, ErrPaletteOverflow
	}
	p.colours = append(p.colours, c)
	return uint8(len(p.colours) - 1), nil
}

// Index returns the index of c, adding it to the palette if needed.
func (p *Palette) Index(c Colour) (uint8, error) {
	for i, pc := range p.colours {
		if pc == c {
			return uint8(i), nil
		}
	}
	return p.Add(c)
}

// Colours returns a copy of the palette.
func (p *Palette) Colours() []Colour {
	return append([]Colour(nil), p.colours...)
}

// GameGear returns the palette converted to 12-bit Game Gear colours.
func (p *Palette) GameGear() []uint16 {
	gg := make([]uint16, len(p.colours))
	for i, c := range p.colours {
		gg[i] = c.GameGear()
	}
	return gg
}
