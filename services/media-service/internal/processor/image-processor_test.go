package processor

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillImageWithColor(img *image.RGBA, c color.RGBA) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func writeTestImage(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillImageWithColor(img, color.RGBA{R: 100, G: 150, B: 200, A: 255})

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	switch filepath.Ext(name) {
	case ".png":
		require.NoError(t, png.Encode(file, img))
	default:
		require.NoError(t, jpeg.Encode(file, img, &jpeg.Options{Quality: 90}))
	}

	return path
}

func TestGenerateThumbnailFitsBounds(t *testing.T) {
	tests := []struct {
		name           string
		fileName       string
		originalWidth  int
		originalHeight int
	}{
		{
			name:           "landscape jpeg",
			fileName:       "landscape.jpg",
			originalWidth:  800,
			originalHeight: 600,
		},
		{
			name:           "portrait png",
			fileName:       "portrait.png",
			originalWidth:  300,
			originalHeight: 500,
		},
		{
			name:           "small image upscales",
			fileName:       "small.jpg",
			originalWidth:  50,
			originalHeight: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			source := writeTestImage(t, dir, tt.fileName, tt.originalWidth, tt.originalHeight)
			dest := filepath.Join(dir, "thumb", tt.fileName)

			p := NewImageProcessor(200, 200)
			require.NoError(t, p.GenerateThumbnail(source, dest))

			file, err := os.Open(dest)
			require.NoError(t, err)
			defer file.Close()

			thumb, _, err := image.Decode(file)
			require.NoError(t, err)
			assert.Equal(t, 200, thumb.Bounds().Dx())
			assert.Equal(t, 200, thumb.Bounds().Dy())
		})
	}
}

func TestGenerateThumbnailRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "document.txt")
	require.NoError(t, os.WriteFile(source, []byte("not an image"), 0644))

	p := NewImageProcessor(200, 200)
	err := p.GenerateThumbnail(source, filepath.Join(dir, "thumb.txt"))

	assert.Error(t, err)
}
