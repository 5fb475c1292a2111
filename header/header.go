/*
Package header renders encoded pattern data as C header files.

Three files are produced. pattern.h holds the pattern table as an array of
32-bit words, with a comment marking where each image starts.
pattern_index.h defines the first pattern index of each image. Mode-0 adds
colour_table.h with one byte per group of 8 patterns, and Mode-4 adds
palette.h with the palette for both the Master System and the Game Gear,
selected with TARGET_SMS or TARGET_GG.
*/
package header

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/sneptile/tile"
)

// Output file names.
const (
	PatternFile      = "pattern.h"
	PatternIndexFile = "pattern_index.h"
	ColourTableFile  = "colour_table.h"
	PaletteFile      = "palette.h"
)

const (
	mode0PatternsPerLine = 4
	entriesPerLine       = 8
)

var errClosed = errors.New("header: already closed")

// Writer accumulates the header files in memory.
type Writer struct {
	mode0 bool

	pattern      bytes.Buffer
	patternIndex bytes.Buffer
	colourTable  bytes.Buffer
	palette      bytes.Buffer

	linePatterns int
	lineEntries  int
	closed       bool
}

func newWriter(mode0 bool) *Writer {
	w := &Writer{mode0: mode0}
	w.pattern.WriteString("static const uint32_t patterns [] = {\n")
	if mode0 {
		w.colourTable.WriteString("static const uint8_t colour_table [] = {\n")
	}
	return w
}

// NewMode0 returns a Writer for TMS9928A Mode-0 output.
func NewMode0() *Writer {
	return newWriter(true)
}

// NewMode4 returns a Writer for Master System Mode-4 output.
func NewMode4() *Writer {
	return newWriter(false)
}

func (w *Writer) newline() string {
	if w.linePatterns != 0 {
		return "\n"
	}
	return ""
}

// Symbol marks the start of file in the pattern table and defines the index
// of its first tile as name.
func (w *Writer) Symbol(file, name string, index int) error {
	if w.closed {
		return errClosed
	}
	fmt.Fprintf(&w.pattern, "%s\n    /* %s */\n", w.newline(), file)
	w.linePatterns = 0
	fmt.Fprintf(&w.patternIndex, "#define PATTERN_%s %d\n", name, index)
	return nil
}

// Pattern appends p to the pattern table.
func (w *Writer) Pattern(p tile.Pattern) error {
	if w.closed {
		return errClosed
	}

	words := make([]string, len(p))
	for i, word := range p {
		words[i] = fmt.Sprintf("0x%08x", word)
	}

	if !w.mode0 {
		fmt.Fprintf(&w.pattern, "    %s,\n", strings.Join(words, ", "))
		return nil
	}

	if w.linePatterns == 0 {
		w.pattern.WriteString("    ")
	} else {
		w.pattern.WriteString(" ")
	}
	fmt.Fprintf(&w.pattern, "%s,", strings.Join(words, ", "))

	if w.linePatterns++; w.linePatterns == mode0PatternsPerLine {
		w.pattern.WriteString("\n")
		w.linePatterns = 0
	}
	return nil
}

// ColourTable appends an entry to the Mode-0 colour table.
func (w *Writer) ColourTable(entry byte) error {
	if w.closed {
		return errClosed
	}
	if !w.mode0 {
		return errors.New("header: colour table is only used in mode-0")
	}

	if w.lineEntries == 0 {
		w.colourTable.WriteString("    ")
	} else {
		w.colourTable.WriteString(" ")
	}
	fmt.Fprintf(&w.colourTable, "0x%02x,", entry)

	if w.lineEntries++; w.lineEntries == entriesPerLine {
		w.colourTable.WriteString("\n")
		w.lineEntries = 0
	}
	return nil
}

func paletteEntries(format string, n int, f func(int) interface{}) string {
	if n == 0 {
		return fmt.Sprintf(format, 0)
	}
	entries := make([]string, n)
	for i := range entries {
		entries[i] = fmt.Sprintf(format, f(i))
	}
	return strings.Join(entries, ", ")
}

// Palette writes the Mode-4 palette in both Master System and Game Gear
// form.
func (w *Writer) Palette(colours []uint8, gameGear []uint16) error {
	if w.closed {
		return errClosed
	}
	if w.mode0 {
		return errors.New("header: palette is only used in mode-4")
	}
	if len(colours) != len(gameGear) {
		return errors.New("header: palette length mismatch")
	}

	w.palette.Reset()
	w.palette.WriteString("#ifdef TARGET_SMS\n")
	fmt.Fprintf(&w.palette, "static const uint8_t palette [16] = { %s };\n",
		paletteEntries("0x%02x", len(colours), func(i int) interface{} { return colours[i] }))
	w.palette.WriteString("#elif defined (TARGET_GG)\n")
	fmt.Fprintf(&w.palette, "static const uint16_t palette [16] = { %s };\n",
		paletteEntries("0x%04x", len(gameGear), func(i int) interface{} { return gameGear[i] }))
	w.palette.WriteString("#endif\n")
	return nil
}

// Close terminates the arrays. No more data can be added afterwards.
func (w *Writer) Close() error {
	if w.closed {
		return errClosed
	}
	w.closed = true

	if w.mode0 {
		fmt.Fprintf(&w.pattern, "%s};\n", w.newline())
		if w.lineEntries != 0 {
			w.colourTable.WriteString("\n")
		}
		w.colourTable.WriteString("};\n")
	} else {
		w.pattern.WriteString("};\n")
	}
	return nil
}

// Files returns the contents of each output file keyed by file name.
func (w *Writer) Files() map[string][]byte {
	files := map[string][]byte{
		PatternFile:      w.pattern.Bytes(),
		PatternIndexFile: w.patternIndex.Bytes(),
	}
	if w.mode0 {
		files[ColourTableFile] = w.colourTable.Bytes()
	} else {
		files[PaletteFile] = w.palette.Bytes()
	}
	return files
}
