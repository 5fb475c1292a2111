package mode4

import (
	"testing"

	"github.com/bodgit/sneptile/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTile returns an 8x8 tile where pixel (x, y) is f(x, y)
func newTile(f func(x, y int) tile.Pixel) tile.Tile {
	pix := make([]byte, tile.Pixels*4)
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			p := f(x, y)
			i := (y*tile.Width + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = p.R, p.G, p.B, p.A
		}
	}
	return tile.New(pix, tile.Width, 0, 0)
}

func solid(p tile.Pixel) tile.Tile {
	return newTile(func(int, int) tile.Pixel { return p })
}

// decode unpacks the bit-planes of p back into palette indices
func decode(p tile.Pattern) (indices [tile.Pixels]uint8) {
	for y, w := range p {
		for x := 0; x < tile.Width; x++ {
			var index uint8
			for i := 0; i < planes; i++ {
				if byte(w>>(8*i))&(0x80>>x) != 0 {
					index |= 1 << i
				}
			}
			indices[y*tile.Width+x] = index
		}
	}
	return
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name  string
		pixel tile.Pixel
		want  Colour
	}{
		{"black", tile.Pixel{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, 0x00},
		{"white", tile.Pixel{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 0x3f},
		{"red", tile.Pixel{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, 0x03},
		{"green", tile.Pixel{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, 0x0c},
		{"blue", tile.Pixel{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, 0x30},
		{"low bits dropped", tile.Pixel{R: 0x7f, G: 0x3f, B: 0xbf, A: 0xff}, 0x21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantize(tt.pixel))
		})
	}
}

func TestColourGameGear(t *testing.T) {
	tests := []struct {
		colour Colour
		want   uint16
	}{
		{0x00, 0x000},
		{0x01, 0x005},
		{0x02, 0x00a},
		{0x03, 0x00f},
		{0x0c, 0x0f0},
		{0x30, 0xf00},
		{0x3f, 0xfff},
		{0x24, 0xa50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.colour.GameGear(), "colour %#02x", tt.colour)
	}
}

func TestPaletteIndex(t *testing.T) {
	var p Palette

	for i := 0; i < MaxColours; i++ {
		index, err := p.Index(Colour(i * 2))
		require.NoError(t, err)
		assert.Equal(t, uint8(i), index)
	}

	// Existing colours are found, not added
	index, err := p.Index(Colour(6))
	require.NoError(t, err)
	assert.Equal(t, uint8(3), index)
	assert.Equal(t, MaxColours, p.Len())

	_, err = p.Index(Colour(1))
	assert.ErrorIs(t, err, ErrPaletteOverflow)
	assert.Equal(t, MaxColours, p.Len())
}

func TestEncodeSolidTile(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	// Palette index 0, so every plane is clear
	b, err := e.EncodeTile(solid(tile.Pixel{R: 0xff, G: 0x00, B: 0x00, A: 0xff}))
	require.NoError(t, err)
	assert.Equal(t, tile.Pattern{0, 0, 0, 0, 0, 0, 0, 0}, b.Pattern)

	// Palette index 1 sets plane 0 only
	b, err = e.EncodeTile(solid(tile.Pixel{R: 0x00, G: 0xff, B: 0x00, A: 0xff}))
	require.NoError(t, err)
	for _, w := range b.Pattern {
		assert.Equal(t, uint32(0x000000ff), w)
	}

	trailer, err := e.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []uint8{0x03, 0x0c}, trailer.Palette)
	assert.Equal(t, []uint16{0x00f, 0x0f0}, trailer.GameGear)
	assert.Empty(t, trailer.ColourTable)
}

func TestEncodeSingleColourPalette(t *testing.T) {
	// With a preset the solid colour lands on index 5: planes 0 and 2
	e, err := NewEncoder(0x00, 0x01, 0x02, 0x03, 0x04)
	require.NoError(t, err)

	b, err := e.EncodeTile(solid(tile.Pixel{R: 0xff, G: 0xff, B: 0xff, A: 0xff}))
	require.NoError(t, err)
	require.Len(t, b.Pattern, tile.Height)
	for _, w := range b.Pattern {
		assert.Equal(t, uint32(0x00ff00ff), w)
	}
	assert.Equal(t, 6, e.Palette().Len())
}

func TestEncodeTransparentTile(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	b, err := e.EncodeTile(solid(tile.Pixel{R: 0xff, G: 0xff, B: 0xff, A: 0x00}))
	require.NoError(t, err)
	assert.True(t, b.Pattern.Blank())
	assert.Equal(t, 0, e.Palette().Len())
}

func TestEncodeRoundTrip(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	// 16 distinct colours spread over the tile, plus transparency
	src := newTile(func(x, y int) tile.Pixel {
		if x == 7 && y == 7 {
			return tile.Pixel{}
		}
		c := (x + y*3) % MaxColours
		return tile.Pixel{R: byte(c&3) << 6, G: byte(c>>2&3) << 6, B: byte(c&1) << 7, A: 0xff}
	})

	b, err := e.EncodeTile(src)
	require.NoError(t, err)

	colours := e.Palette().Colours()
	indices := decode(b.Pattern)
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			px := src.At(x, y)
			index := indices[y*tile.Width+x]
			if px.Transparent() {
				assert.Equal(t, uint8(0), index)
				continue
			}
			assert.Equal(t, Quantize(px), colours[index], "pixel (%d, %d)", x, y)
		}
	}

	// Re-encoding the decoded tile gives identical output
	dup := newTile(func(x, y int) tile.Pixel {
		if x == 7 && y == 7 {
			return tile.Pixel{}
		}
		r, g, b, _ := colours[indices[y*tile.Width+x]].RGBA()
		return tile.Pixel{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8), A: 0xff}
	})
	b2, err := e.EncodeTile(dup)
	require.NoError(t, err)
	assert.Equal(t, b.Pattern, b2.Pattern)
	assert.Equal(t, colours, e.Palette().Colours())
}

func TestEncodePaletteOverflow(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	for i := 0; i < MaxColours; i++ {
		c := byte(i)
		_, err := e.EncodeTile(solid(tile.Pixel{R: c & 3 << 6, G: c >> 2 & 3 << 6, B: 0, A: 0xff}))
		require.NoError(t, err)
	}

	_, err = e.EncodeTile(solid(tile.Pixel{R: 0, G: 0, B: 0xff, A: 0xff}))
	assert.ErrorIs(t, err, ErrPaletteOverflow)
	assert.Equal(t, MaxColours, e.Palette().Len())
}

func TestNewEncoderPresetOverflow(t *testing.T) {
	preset := make([]Colour, MaxColours+1)
	_, err := NewEncoder(preset...)
	assert.ErrorIs(t, err, ErrPaletteOverflow)
}
