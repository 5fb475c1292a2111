package sneptile

import (
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/sneptile/mode0"
	"github.com/bodgit/sneptile/mode4"
	"github.com/bodgit/sneptile/tile"
	"github.com/ericpauley/go-quantize/quantize"
)

// Image is a decoded image ready to be encoded.
type Image struct {
	Name          string
	Width, Height int
	// Pix holds the pixels in row-major order, 4 bytes each: R, G, B, A
	// without alpha premultiplication
	Pix []byte

	// Sum is the SHA-1 of the file the image was decoded from, if known
	Sum [sha1.Size]byte
}

// NewImage converts m to an Image.
func NewImage(name string, m image.Image) *Image {
	b := m.Bounds()

	nm, _ := m.(*image.NRGBA)
	if nm == nil || nm.Rect.Min != (image.Point{}) || nm.Stride != 4*b.Dx() {
		nm = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nm, nm.Rect, m, b.Min, draw.Src)
	}

	return &Image{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    nm.Pix[:4*b.Dx()*b.Dy()],
	}
}

// NRGBA returns an image.Image sharing the pixels of m.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: 4 * m.Width,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

func (m *Image) validate() error {
	if m.Width < 0 || m.Height < 0 || m.Width%tile.Width != 0 || m.Height%tile.Height != 0 {
		return fmt.Errorf("%w: %s is %dx%d, not a multiple of %dx%d", ErrInvalidDimensions, m.Name, m.Width, m.Height, tile.Width, tile.Height)
	}
	if len(m.Pix) != 4*m.Width*m.Height {
		return fmt.Errorf("%w: %s has %d bytes of pixel data for %dx%d", ErrInvalidDimensions, m.Name, len(m.Pix), m.Width, m.Height)
	}
	return nil
}

// Reduce replaces the colours of m so it is more likely to encode in the
// given mode. For Mode-4 the image is reduced to at most 16 colours with a
// median cut. For Mode-0 each pixel becomes the nearest TMS9928A colour.
// Transparent pixels are left alone.
func (m *Image) Reduce(mode Mode) {
	p := m.palette(mode)
	if len(p) == 0 {
		return
	}

	for i := 0; i+3 < len(m.Pix); i += 4 {
		if m.Pix[i+3] == 0 {
			continue
		}
		c := color.NRGBAModel.Convert(p.Convert(color.NRGBA{m.Pix[i], m.Pix[i+1], m.Pix[i+2], 0xff})).(color.NRGBA)
		m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = c.R, c.G, c.B, 0xff
	}
}

// palette returns the colours m should be reduced to. Only opaque pixels
// count towards the Mode-4 median cut.
func (m *Image) palette(mode Mode) color.Palette {
	if mode == Mode0 {
		return mode0.Palette()
	}

	q := quantize.MedianCutQuantizer{
		Weighting: func(_ image.Image, x, y int) uint32 {
			if m.Pix[(y*m.Width+x)*4+3] == 0 {
				return 0
			}
			return 1
		},
	}
	return q.Quantize(make(color.Palette, 0, mode4.MaxColours), m.NRGBA())
}
