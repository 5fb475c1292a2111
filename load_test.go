package sneptile

import (
	"context"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, file string, m image.Image) [sha1.Size]byte {
	t.Helper()

	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	return sha1.Sum(b)
}

func TestLoadImages(t *testing.T) {
	dir := t.TempDir()

	var (
		files []string
		sums  [][sha1.Size]byte
	)
	for i := 0; i < 6; i++ {
		m := image.NewNRGBA(image.Rect(0, 0, 8*(i+1), 8))
		for x := 0; x < m.Rect.Dx(); x++ {
			m.SetNRGBA(x, 0, color.NRGBA{byte(i), 0xff, 0x00, 0x80})
		}
		file := filepath.Join(dir, fmt.Sprintf("image%d.png", i))
		sums = append(sums, writePNG(t, file, m))
		files = append(files, file)
	}

	images, err := LoadImages(context.Background(), files, 2)
	require.NoError(t, err)
	require.Len(t, images, len(files))

	for i, m := range images {
		assert.Equal(t, fmt.Sprintf("image%d.png", i), m.Name)
		assert.Equal(t, 8*(i+1), m.Width)
		assert.Equal(t, 8, m.Height)
		assert.Equal(t, sums[i], m.Sum)
		// Alpha is not premultiplied
		assert.Equal(t, []byte{byte(i), 0xff, 0x00, 0x80}, m.Pix[0:4])
	}
}

func TestLoadImagesMissing(t *testing.T) {
	_, err := LoadImages(context.Background(), []string{filepath.Join(t.TempDir(), "missing.png")}, 0)
	assert.Error(t, err)
}

func TestLoadImagesNotAnImage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "text.png")
	require.NoError(t, os.WriteFile(file, []byte("not an image"), 0644))

	_, err := LoadImages(context.Background(), []string{file}, 0)
	assert.ErrorIs(t, err, image.ErrFormat)
}
