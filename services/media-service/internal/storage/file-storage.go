package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorage keeps uploaded originals and their thumbnails on local
// disk, under <root>/original and <root>/thumbnail.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) (*FileStorage, error) {
	for _, dir := range []string{"original", "thumbnail"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
	}

	return &FileStorage{root: root}, nil
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// SaveOriginal streams the upload to disk under a generated filename and
// returns that filename.
func (s *FileStorage) SaveOriginal(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file extension: %s", ext)
	}

	filename := uuid.New().String() + ext

	file, err := os.Create(s.OriginalPath(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filename, nil
}

func (s *FileStorage) OriginalPath(filename string) string {
	return filepath.Join(s.root, "original", filepath.Base(filename))
}

func (s *FileStorage) ThumbnailPath(filename string) string {
	return filepath.Join(s.root, "thumbnail", filepath.Base(filename))
}

// Delete removes the original and its thumbnail. A missing thumbnail is
// not an error.
func (s *FileStorage) Delete(filename string) error {
	if err := os.Remove(s.OriginalPath(filename)); err != nil {
		return err
	}

	if err := os.Remove(s.ThumbnailPath(filename)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (s *FileStorage) Exists(filename string) bool {
	_, err := os.Stat(s.OriginalPath(filename))
	return err == nil
}
