package processor

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ImageProcessor derives thumbnail renditions from uploaded images.
type ImageProcessor interface {
	GenerateThumbnail(sourcePath, destPath string) error
}

type imageProcessor struct {
	thumbnailWidth  int
	thumbnailHeight int
}

func NewImageProcessor(thumbnailWidth, thumbnailHeight int) ImageProcessor {
	return &imageProcessor{
		thumbnailWidth:  thumbnailWidth,
		thumbnailHeight: thumbnailHeight,
	}
}

func (p *imageProcessor) GenerateThumbnail(sourcePath, destPath string) error {
	img, format, err := loadImage(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	thumbnail := imaging.Thumbnail(img, p.thumbnailWidth, p.thumbnailHeight, imaging.Lanczos)

	if err := saveImage(thumbnail, destPath, format); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return nil
}

func loadImage(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	switch filepath.Ext(path) {
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(file)
		return img, "jpeg", err
	case ".png":
		img, err := png.Decode(file)
		return img, "png", err
	case ".gif":
		gifImg, err := gif.DecodeAll(file)
		if err != nil {
			return nil, "", err
		}
		if len(gifImg.Image) == 0 {
			return nil, "", fmt.Errorf("no frames in GIF")
		}
		// thumbnails use the first frame only
		return gifImg.Image[0], "gif", nil
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
}

func saveImage(img image.Image, path string, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case "png":
		return png.Encode(file, img)
	case "gif":
		// animated sources flatten to a static PNG thumbnail
		return png.Encode(file, img)
	default:
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	}
}
