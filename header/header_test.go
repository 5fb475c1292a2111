package header

import (
	"testing"

	"github.com/bodgit/sneptile/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode4(t *testing.T) {
	w := NewMode4()

	require.NoError(t, w.Symbol("ship.png", "SHIP", 0))
	require.NoError(t, w.Pattern(tile.Pattern{0, 1, 2, 3, 4, 5, 6, 0xffffffff}))
	require.NoError(t, w.Symbol("font.png", "FONT", 1))
	require.NoError(t, w.Pattern(make(tile.Pattern, 8)))
	require.NoError(t, w.Palette([]uint8{0x00, 0x3f}, []uint16{0x000, 0xfff}))
	assert.Error(t, w.ColourTable(0x12))
	require.NoError(t, w.Close())

	files := w.Files()
	assert.Len(t, files, 3)

	assert.Equal(t, "static const uint32_t patterns [] = {\n"+
		"\n    /* ship.png */\n"+
		"    0x00000000, 0x00000001, 0x00000002, 0x00000003, 0x00000004, 0x00000005, 0x00000006, 0xffffffff,\n"+
		"\n    /* font.png */\n"+
		"    0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000, 0x00000000,\n"+
		"};\n", string(files[PatternFile]))

	assert.Equal(t, "#define PATTERN_SHIP 0\n#define PATTERN_FONT 1\n", string(files[PatternIndexFile]))

	assert.Equal(t, "#ifdef TARGET_SMS\n"+
		"static const uint8_t palette [16] = { 0x00, 0x3f };\n"+
		"#elif defined (TARGET_GG)\n"+
		"static const uint16_t palette [16] = { 0x0000, 0x0fff };\n"+
		"#endif\n", string(files[PaletteFile]))

	assert.Error(t, w.Pattern(make(tile.Pattern, 8)))
	assert.Error(t, w.Close())
}

func TestMode4EmptyPalette(t *testing.T) {
	w := NewMode4()
	require.NoError(t, w.Palette([]uint8{}, []uint16{}))
	require.NoError(t, w.Close())

	assert.Equal(t, "#ifdef TARGET_SMS\n"+
		"static const uint8_t palette [16] = { 0x00 };\n"+
		"#elif defined (TARGET_GG)\n"+
		"static const uint16_t palette [16] = { 0x0000 };\n"+
		"#endif\n", string(w.Files()[PaletteFile]))
}

func TestMode0(t *testing.T) {
	w := NewMode0()

	require.NoError(t, w.Symbol("first.png", "FIRST", 0))
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Pattern(tile.Pattern{uint32(i), 0x0f0f0f0f}))
	}
	require.NoError(t, w.Symbol("second.png", "SECOND", 5))
	require.NoError(t, w.Pattern(tile.Pattern{0xffffffff, 0xffffffff}))
	for i := 0; i < 9; i++ {
		require.NoError(t, w.ColourTable(byte(0xf0+i)))
	}
	assert.Error(t, w.Palette([]uint8{0}, []uint16{0}))
	require.NoError(t, w.Close())

	files := w.Files()
	assert.Len(t, files, 3)

	assert.Equal(t, "static const uint32_t patterns [] = {\n"+
		"\n    /* first.png */\n"+
		"    0x00000000, 0x0f0f0f0f, 0x00000001, 0x0f0f0f0f, 0x00000002, 0x0f0f0f0f, 0x00000003, 0x0f0f0f0f,\n"+
		"    0x00000004, 0x0f0f0f0f,\n"+
		"\n    /* second.png */\n"+
		"    0xffffffff, 0xffffffff,\n"+
		"};\n", string(files[PatternFile]))

	assert.Equal(t, "#define PATTERN_FIRST 0\n#define PATTERN_SECOND 5\n", string(files[PatternIndexFile]))

	assert.Equal(t, "static const uint8_t colour_table [] = {\n"+
		"    0xf0, 0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7,\n"+
		"    0xf8,\n"+
		"};\n", string(files[ColourTableFile]))
}
