/*
Package mode0 implements the TMS9928A Graphics I (Mode-0) pattern encoder.

Patterns are 1 bit per pixel. Colour comes from the colour table where a
single byte supplies the background and foreground colour for a group of 8
consecutive patterns. A tile may therefore use at most two colours and every
tile in a group must fit within the same two colours. When a tile does not
fit, the open group is padded out with blank patterns and a new group is
started.

Colours must be given exactly as the gamma corrected TMS9928A palette.
*/
package mode0

import (
	"errors"
	"image/color"

	"github.com/bodgit/sneptile/tile"
)

// Colour is a TMS9928A colour index.
type Colour uint8

// Transparent is colour index 0.
const Transparent Colour = 0

// ErrUnmappableColour is returned in strict mode for an opaque pixel that
// does not match any TMS9928A colour.
var ErrUnmappableColour = errors.New("mode0: colour not in TMS9928A palette")

// Reference is the gamma corrected TMS9928A palette. Entry 0 is transparent.
var Reference = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0x00}, // Transparent
	{0x00, 0x00, 0x00, 0xff}, // Black
	{0x0a, 0xad, 0x1e, 0xff}, // Medium green
	{0x34, 0xc8, 0x4c, 0xff}, // Light green
	{0x2b, 0x2d, 0xe3, 0xff}, // Dark blue
	{0x51, 0x4b, 0xfb, 0xff}, // Light blue
	{0xbd, 0x29, 0x25, 0xff}, // Dark red
	{0x1e, 0xe2, 0xef, 0xff}, // Cyan
	{0xfb, 0x2c, 0x2b, 0xff}, // Medium red
	{0xff, 0x5f, 0x4c, 0xff}, // Light red
	{0xbd, 0xa2, 0x2b, 0xff}, // Dark yellow
	{0xd7, 0xb4, 0x54, 0xff}, // Light yellow
	{0x0a, 0x8c, 0x18, 0xff}, // Dark green
	{0xaf, 0x32, 0x9a, 0xff}, // Magenta
	{0xb2, 0xb2, 0xb2, 0xff}, // Grey
	{0xff, 0xff, 0xff, 0xff}, // White
}

// Palette returns the opaque reference colours, suitable for snapping an
// image to the nearest TMS9928A colour.
func Palette() color.Palette {
	p := make(color.Palette, 0, len(Reference)-1)
	for _, c := range Reference[1:] {
		p = append(p, c)
	}
	return p
}

// Classify returns the colour index of p. Transparent pixels are colour 0.
// An opaque pixel that does not exactly match a reference colour also
// returns colour 0, with ok set to false.
func Classify(p tile.Pixel) (c Colour, ok bool) {
	if p.Transparent() {
		return Transparent, true
	}
	for i := 1; i < len(Reference); i++ {
		if r := Reference[i]; p.R == r.R && p.G == r.G && p.B == r.B {
			return Colour(i), true
		}
	}
	return Transparent, false
}
