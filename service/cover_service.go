package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"readora-admin/repository"

	"github.com/disintegration/imaging"
)

const (
	coverCacheDir = "cache/covers"
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// CoverService serves resized JPEG renditions of book cover images, with a
// disk cache keyed by book id and size.
type CoverService struct {
	bookRepo  repository.BookRepositoryInterface
	staticDir string // root for relative cover paths
	client    *http.Client
}

// NewCoverService creates a new CoverService
func NewCoverService(bookRepo repository.BookRepositoryInterface, staticDir string) *CoverService {
	return &CoverService{
		bookRepo:  bookRepo,
		staticDir: staticDir,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// EnsureCoverCacheDir ensures the cover cache directory exists
func EnsureCoverCacheDir() error {
	if err := os.MkdirAll(coverCacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// coverCachePath returns the cache file path for a given book ID and size
func coverCachePath(bookID int, size string) string {
	filename := fmt.Sprintf("book_%d_%s.jpg", bookID, size)
	return filepath.Join(coverCacheDir, filename)
}

// normalizeCoverSize whitelists the rendition name before it is used in a
// cache filename. The size comes straight from a query parameter, so anything
// other than a known rendition becomes medium.
func normalizeCoverSize(size string) string {
	switch size {
	case "thumb", "medium":
		return size
	}
	return "medium"
}

// GetCover returns the optimized cover for a book. Cached renditions are
// served from disk; otherwise the source image is fetched, resized, encoded
// as JPEG, cached, and returned.
func (s *CoverService) GetCover(ctx context.Context, bookID int, size string) ([]byte, error) {
	size = normalizeCoverSize(size)
	cachePath := coverCachePath(bookID, size)
	if data, err := os.ReadFile(cachePath); err == nil {
		log.Printf("✓ Cover served from cache: %s", cachePath)
		return data, nil
	}

	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book.Image == "" {
		return nil, fmt.Errorf("book %d has no cover image", bookID)
	}

	raw, err := s.fetchCover(ctx, book.Image)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeCover(raw, size)
	if err != nil {
		return nil, err
	}

	if err := saveCoverToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️ Failed to cache cover for book %d: %v", bookID, err)
	}

	return optimized, nil
}

// fetchCover loads the raw cover bytes from an http(s) URL or from a file
// under the static directory.
func (s *CoverService) fetchCover(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build cover request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch cover: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("cover source returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(filepath.Join(s.staticDir, source))
	if err != nil {
		return nil, fmt.Errorf("failed to read cover file: %w", err)
	}
	return data, nil
}

func saveCoverToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Cover cached: %s", cachePath)
	return nil
}

// OptimizeCover converts a cover image to JPEG, downscaled to fit the
// requested size. Unknown sizes fall back to medium.
func OptimizeCover(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Cover decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️ Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	resized := img
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		resized = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Cover resized: %dx%d -> %v", bounds.Dx(), bounds.Dy(), resized.Bounds())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Cover optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
