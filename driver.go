package sneptile

import (
	"context"

	"github.com/bodgit/sneptile/tile"
	"go.uber.org/zap"
)

// Encode encodes each image in turn. An image with invalid dimensions is
// rejected before any of its tiles are encoded, leaving the output of
// earlier images in place. Any other error means the output is incomplete
// and the Sneptile cannot be used further. Cancellation of ctx is only
// noticed between images.
func (s *Sneptile) Encode(ctx context.Context, images ...*Image) error {
	for _, m := range images {
		if s.err != nil {
			return s.err
		}
		if s.closed {
			return errClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.encodeImage(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sneptile) fail(err error) error {
	s.err = err
	return err
}

func (s *Sneptile) symbol(m *Image) error {
	sym := Symbol{
		Name:  SymbolName(m.Name),
		Index: s.index,
	}
	s.symbols = append(s.symbols, sym)
	return s.sink.Symbol(m.Name, sym.Name, sym.Index)
}

func (s *Sneptile) pattern(p tile.Pattern) error {
	if err := s.sink.Pattern(p); err != nil {
		return err
	}
	s.index++
	return nil
}

func (s *Sneptile) diagnose(m *Image, unmappable int) {
	if unmappable == 0 {
		return
	}
	if s.unmappable == 0 {
		s.logger.Warn("image contains colours outside the TMS9928A palette", zap.String("image", m.Name))
	}
	s.unmappable += unmappable
}

func (s *Sneptile) encodeImage(m *Image) error {
	if err := m.validate(); err != nil {
		return err
	}

	s.logger.Debug("encoding image",
		zap.String("image", m.Name),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("index", s.index))

	// The symbol is only written with the first pattern as the encoder
	// may need to pad before it
	first := true
	for y := 0; y < m.Height; y += tile.Height {
		for x := 0; x < m.Width; x += tile.Width {
			b, err := s.encoder.EncodeTile(tile.New(m.Pix, m.Width, x, y))
			if err != nil {
				return s.fail(&TileError{Image: m.Name, X: x, Y: y, Index: s.index, Err: err})
			}
			s.diagnose(m, b.Unmappable)

			if b.Padding > 0 {
				s.logger.Debug("padding colour-table group",
					zap.String("image", m.Name),
					zap.Int("index", s.index),
					zap.Int("padding", b.Padding))
			}
			for i := 0; i < b.Padding; i++ {
				if err := s.pattern(make(tile.Pattern, len(b.Pattern))); err != nil {
					return s.fail(err)
				}
			}

			if first {
				if err := s.symbol(m); err != nil {
					return s.fail(err)
				}
				first = false
			}

			if err := s.pattern(b.Pattern); err != nil {
				return s.fail(err)
			}

			for _, entry := range b.ColourTable {
				if err := s.sink.ColourTable(entry); err != nil {
					return s.fail(err)
				}
			}
		}
	}

	if first {
		if err := s.symbol(m); err != nil {
			return s.fail(err)
		}
	}

	return nil
}

// Close finishes the run, passing anything the encoder has left to the
// sink.
func (s *Sneptile) Close() (Result, error) {
	if s.err != nil {
		return Result{}, s.err
	}
	if s.closed {
		return Result{}, errClosed
	}
	s.closed = true

	trailer, err := s.encoder.Finalize()
	if err != nil {
		return Result{}, s.fail(err)
	}

	for _, entry := range trailer.ColourTable {
		if err := s.sink.ColourTable(entry); err != nil {
			return Result{}, s.fail(err)
		}
	}

	if trailer.Palette != nil {
		if err := s.sink.Palette(trailer.Palette, trailer.GameGear); err != nil {
			return Result{}, s.fail(err)
		}
	}

	s.logger.Debug("finished",
		zap.Int("tiles", s.index),
		zap.Int("images", len(s.symbols)))

	return Result{
		Tiles:      s.index,
		Symbols:    append([]Symbol(nil), s.symbols...),
		Unmappable: s.unmappable,
	}, nil
}
