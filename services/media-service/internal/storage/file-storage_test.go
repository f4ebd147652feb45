package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOriginalGeneratesUniqueNames(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	first, err := s.SaveOriginal("court.jpg", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	second, err := s.SaveOriginal("court.jpg", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".jpg"))
	assert.True(t, s.Exists(first))
	assert.True(t, s.Exists(second))
}

func TestSaveOriginalRejectsUnknownExtension(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.SaveOriginal("script.exe", strings.NewReader("payload"))

	assert.Error(t, err)
}

func TestDeleteRemovesOriginalAndThumbnail(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	filename, err := s.SaveOriginal("court.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.ThumbnailPath(filename), []byte("thumb-bytes"), 0644))

	require.NoError(t, s.Delete(filename))

	assert.False(t, s.Exists(filename))
	_, statErr := os.Stat(s.ThumbnailPath(filename))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteMissingFileFails(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Delete("missing.jpg"))
}

func TestPathsStripDirectoryTraversal(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	path := s.OriginalPath("../../etc/passwd")

	assert.True(t, strings.HasSuffix(path, "original/passwd"))
}
