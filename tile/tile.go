/*
Package tile holds the types shared by the Mode-0 and Mode-4 pattern
encoders.

Images are consumed as row-major RGBA buffers with both dimensions a multiple
of 8. Each 8 by 8 block is handed to an encoder as a Tile, which is a view
into the buffer rather than a copy. An encoder turns a Tile into a Pattern,
the packed 32-bit words that end up in the pattern table.
*/
package tile

const (
	Width         = 8
	Height        = Width
	Pixels        = Width * Height
	bytesPerPixel = 4
)

// Pixel is a single RGBA pixel with 8 bits per channel.
type Pixel struct {
	R, G, B, A uint8
}

// Transparent reports whether p is transparent. Alpha is not blended; any
// non-zero alpha is fully opaque.
func (p Pixel) Transparent() bool {
	return p.A == 0
}

// Tile is an 8 by 8 view into an RGBA buffer.
type Tile struct {
	pix    []byte
	stride int

	// X and Y are the pixel coordinates of the top-left corner
	X, Y int
}

// New returns the Tile with its top-left corner at (x, y) within pix, a
// row-major RGBA buffer that is width pixels wide.
func New(pix []byte, width, x, y int) Tile {
	return Tile{
		pix:    pix,
		stride: width * bytesPerPixel,
		X:      x,
		Y:      y,
	}
}

// At returns the pixel at (x, y) relative to the tile origin.
func (t Tile) At(x, y int) Pixel {
	i := (t.Y+y)*t.stride + (t.X+x)*bytesPerPixel
	return Pixel{t.pix[i], t.pix[i+1], t.pix[i+2], t.pix[i+3]}
}

// Pattern is one encoded tile, as the words handed to an emitter.
type Pattern []uint32

// Blank reports whether every word of p is zero.
func (p Pattern) Blank() bool {
	for _, w := range p {
		if w != 0 {
			return false
		}
	}
	return true
}

// Block is the result of encoding a single tile.
type Block struct {
	// Padding is the number of blank patterns that must be emitted
	// before Pattern
	Padding int
	Pattern Pattern
	// ColourTable holds any colour-table entries closed while encoding
	// the tile, in order
	ColourTable []byte
	// Unmappable counts opaque pixels that had no hardware colour
	Unmappable int
}

// Trailer is whatever an encoder still has to emit once the last tile has
// been encoded.
type Trailer struct {
	ColourTable []byte
	Palette     []uint8
	GameGear    []uint16
}
