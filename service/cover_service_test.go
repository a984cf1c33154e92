package service

import (
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"readora-admin/models"
	"readora-admin/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCover(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 40, 60)), nil))
}

func newCoverService(t *testing.T) *CoverService {
	t.Helper()
	t.Chdir(t.TempDir()) // cache/covers is created relative to the working dir

	staticDir := t.TempDir()
	writeTestCover(t, filepath.Join(staticDir, "cover.jpg"))

	repo := repository.NewBookRepository()
	repo.Replace([]models.Book{{ID: 1, Title: "The Hobbit", Image: "cover.jpg"}})
	return NewCoverService(repo, staticDir)
}

func TestNormalizeCoverSize(t *testing.T) {
	assert.Equal(t, "thumb", normalizeCoverSize("thumb"))
	assert.Equal(t, "medium", normalizeCoverSize("medium"))
	assert.Equal(t, "medium", normalizeCoverSize(""))
	assert.Equal(t, "medium", normalizeCoverSize("original"))
	assert.Equal(t, "medium", normalizeCoverSize("../../../../tmp/evil"))
}

func TestGetCoverKeepsCacheInsideCacheDir(t *testing.T) {
	svc := newCoverService(t)

	data, err := svc.GetCover(context.Background(), 1, "../../../../tmp/evil")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// The hostile size collapses to medium, so the only artifact on disk is
	// the medium rendition inside the cache directory.
	entries, err := filepath.Glob(filepath.Join(coverCacheDir, "*"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(coverCacheDir, "book_1_medium.jpg"), entries[0])

	escaped := filepath.Clean(filepath.Join(coverCacheDir, "book_1_../../../../tmp/evil.jpg"))
	_, statErr := os.Stat(escaped)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGetCoverCachesRendition(t *testing.T) {
	svc := newCoverService(t)

	first, err := svc.GetCover(context.Background(), 1, "thumb")
	require.NoError(t, err)

	cached, err := os.ReadFile(coverCachePath(1, "thumb"))
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	again, err := svc.GetCover(context.Background(), 1, "thumb")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}
