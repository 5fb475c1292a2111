/*
Package mode4 implements the Sega Master System VDP Mode-4 pattern encoder.

Each 8 by 8 tile is stored as eight rows of four bit-planes, giving every
pixel a 4-bit index into a single 16 colour palette. The palette is shared by
every tile encoded in a run and grows as new colours are seen. Colours are
6-bit values with two bits per channel; the Game Gear uses the same layout
with a 12-bit palette which is derived from the 6-bit one.
*/
package mode4

import (
	"image/color"

	"github.com/bodgit/sneptile/tile"
)

// Colour is a 6-bit Master System colour, packed as 00BBGGRR.
type Colour uint8

// Quantize reduces p to a Colour by keeping the top two bits of each channel.
// Alpha is ignored.
func Quantize(p tile.Pixel) Colour {
	return Colour(p.R>>6 | p.G>>6<<2 | p.B>>6<<4)
}

func (c Colour) channels() (r, g, b uint8) {
	return uint8(c) & 0x03, uint8(c) >> 2 & 0x03, uint8(c) >> 4 & 0x03
}

// GameGear converts c to the equivalent 12-bit Game Gear colour, packed as
// 0000BBBBGGGGRRRR.
func (c Colour) GameGear() uint16 {
	r, g, b := c.channels()
	return uint16(r)*5 | uint16(g)*5<<4 | uint16(b)*5<<8
}

// RGBA implements the color.Color interface.
func (c Colour) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := c.channels()
	return color.RGBA{cr * 0x55, cg * 0x55, cb * 0x55, 0xff}.RGBA()
}
