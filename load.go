package sneptile

import (
	"context"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/sync/errgroup"
)

func loadImage(file string) (*Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	// Drain anything the decoder didn't read so the hash covers the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}

	// Only the file name is used, not the path
	img := NewImage(filepath.Base(file), m)
	copy(img.Sum[:], h.Sum(nil))

	return img, nil
}

// LoadImages decodes files using up to jobs concurrent workers. The images
// are returned in the same order as files.
func LoadImages(ctx context.Context, files []string, jobs int) ([]*Image, error) {
	images := make([]*Image, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := loadImage(file)
			if err != nil {
				return err
			}
			images[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return images, nil
}
