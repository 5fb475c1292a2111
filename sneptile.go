/*
Package sneptile converts images made up of 8 by 8 tiles into pattern data
for two video display processors: the Sega Master System VDP in Mode-4, and
the TMS9928A in Mode-0 (Graphics I).

Images are encoded in the order they are supplied, each one left to right,
top to bottom, one tile at a time. Every pattern produced is given the next
index in a single sequence shared by all images, and the index of the first
tile of each image is recorded under a symbol derived from the image name.
The encoded data is handed to a Sink as it is produced.
*/
package sneptile

import (
	"fmt"

	"github.com/bodgit/sneptile/mode0"
	"github.com/bodgit/sneptile/mode4"
	"github.com/bodgit/sneptile/tile"
	"go.uber.org/zap"
)

// Mode selects the pattern format.
type Mode int

const (
	// Mode4 is the 4 bits per pixel Master System format
	Mode4 Mode = iota
	// Mode0 is the 1 bit per pixel TMS9928A format
	Mode0
)

func (m Mode) String() string {
	switch m {
	case Mode4:
		return "mode-4"
	case Mode0:
		return "mode-0"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// TileEncoder is implemented by the encoder for each mode.
type TileEncoder interface {
	EncodeTile(tile.Tile) (tile.Block, error)
	Finalize() (tile.Trailer, error)
}

// Sink receives the encoded output. Calls are made in output order and
// nothing is ever retracted.
type Sink interface {
	// Symbol names the index of the first tile of the image read from
	// file
	Symbol(file, name string, index int) error
	// Pattern appends a pattern to the pattern table
	Pattern(tile.Pattern) error
	// ColourTable appends a Mode-0 colour-table entry
	ColourTable(entry byte) error
	// Palette sets the final Mode-4 palette
	Palette(colours []uint8, gameGear []uint16) error
}

// Options configures a run.
type Options struct {
	Mode Mode
	// Strict makes an opaque pixel outside the TMS9928A palette an error
	// in Mode-0 rather than being treated as colour 0
	Strict bool
	// Palette is the initial Mode-4 palette
	Palette []uint8
}

// NewEncoder returns the TileEncoder for o.Mode.
func NewEncoder(o Options) (TileEncoder, error) {
	switch o.Mode {
	case Mode4:
		preset := make([]mode4.Colour, 0, len(o.Palette))
		for _, c := range o.Palette {
			if c > 0x3f {
				return nil, fmt.Errorf("sneptile: palette colour %#02x is not a 6-bit colour", c)
			}
			preset = append(preset, mode4.Colour(c))
		}
		e, err := mode4.NewEncoder(preset...)
		if err != nil {
			return nil, err
		}
		return e, nil
	case Mode0:
		if len(o.Palette) > 0 {
			return nil, fmt.Errorf("sneptile: %s does not take a palette", o.Mode)
		}
		return mode0.NewEncoder(o.Strict), nil
	default:
		return nil, fmt.Errorf("sneptile: unknown mode %d", int(o.Mode))
	}
}

// Symbol is the first tile index of an image.
type Symbol struct {
	Name  string
	Index int
}

// Result summarises a completed run.
type Result struct {
	// Tiles is the number of patterns emitted, including padding
	Tiles   int
	Symbols []Symbol
	// Unmappable is the number of Mode-0 pixels treated as colour 0
	// because they were not in the TMS9928A palette
	Unmappable int
}

// Sneptile encodes a sequence of images. The zero value is not usable, use
// New.
type Sneptile struct {
	encoder TileEncoder
	sink    Sink
	logger  *zap.Logger

	index      int
	symbols    []Symbol
	unmappable int

	err    error
	closed bool
}

// New returns a Sneptile that writes to sink. A nil logger discards all
// logging.
func New(sink Sink, logger *zap.Logger, o Options) (*Sneptile, error) {
	e, err := NewEncoder(o)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Sneptile{
		encoder: e,
		sink:    sink,
		logger:  logger.With(zap.Stringer("mode", o.Mode)),
	}, nil
}

// Index returns the index the next pattern will be given.
func (s *Sneptile) Index() int {
	return s.index
}
