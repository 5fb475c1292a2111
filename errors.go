package sneptile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned for an image that is not made up of
	// whole 8 by 8 tiles. It is detected before any tile of the image is
	// encoded.
	ErrInvalidDimensions = errors.New("sneptile: invalid image dimensions")

	errClosed = errors.New("sneptile: already closed")
)

// TileError records a failure to encode a tile. The run cannot continue
// afterwards.
type TileError struct {
	Image string
	// X and Y are the pixel coordinates of the tile within the image
	X, Y int
	// Index is the index the tile would have had
	Index int
	Err   error
}

func (e *TileError) Error() string {
	return fmt.Sprintf("%s: tile at (%d, %d), index %d: %v", e.Image, e.X, e.Y, e.Index, e.Err)
}

func (e *TileError) Unwrap() error {
	return e.Err
}
