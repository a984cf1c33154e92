package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"readora-admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCatalogDefaults(t *testing.T) {
	books := NormalizeCatalog([]models.CatalogEntry{{}})

	require.Len(t, books, 1)
	b := books[0]
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, "Untitled", b.Title)
	assert.Equal(t, "Unknown", b.Author)
	assert.Equal(t, float64(0), b.Price)
	assert.Equal(t, "Uncategorized", b.Category)
	assert.Equal(t, "images/placeholder-book.jpg", b.Image)
	assert.False(t, b.Top)
}

func TestNormalizeCatalogSequentialIDsSkipExisting(t *testing.T) {
	books := NormalizeCatalog([]models.CatalogEntry{
		{Title: "A"},
		{ID: 42, Title: "B"},
		{Title: "C"},
	})

	require.Len(t, books, 3)
	// The fallback counter only advances when it is used
	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, 42, books[1].ID)
	assert.Equal(t, 2, books[2].ID)
}

func TestNormalizeCatalogPrefersCoverOverImage(t *testing.T) {
	books := NormalizeCatalog([]models.CatalogEntry{
		{Title: "A", Cover: "covers/a.jpg", Image: "images/a.jpg"},
		{Title: "B", Image: "images/b.jpg"},
	})

	assert.Equal(t, "covers/a.jpg", books[0].Image)
	assert.Equal(t, "images/b.jpg", books[1].Image)
}

func TestMergeTopSellingFlagsByTitleCaseInsensitive(t *testing.T) {
	books := []models.Book{
		{Title: "The Hobbit"},
		{Title: "1984", Top: true},
		{Title: "Gone Girl"},
	}

	MergeTopSelling(books, []models.TopSellingEntry{
		{Title: "the hobbit"},
		{Title: "Unrelated"},
	})

	assert.True(t, books[0].Top)
	assert.True(t, books[1].Top)
	assert.False(t, books[2].Top)
}

func TestTopCardsCombinesFlaggedBooksAndOverlayExtras(t *testing.T) {
	books := []models.Book{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Price: 399, Image: "images/book7.jpg", Top: true},
		{Title: "1984", Image: "images/book3.jpg"},
	}
	overlay := []models.TopSellingEntry{
		{Title: "The Hobbit"}, // already in catalog, not duplicated
		{Title: "Atomic Habits", Author: "James Clear", Price: 449, Cover: "images/ah.jpg"},
		{Title: ""}, // skipped
	}

	cards := TopCards(books, overlay)

	require.Len(t, cards, 2)
	assert.Equal(t, "The Hobbit", cards[0].Title)
	assert.Equal(t, "Atomic Habits", cards[1].Title)
	assert.Equal(t, "images/ah.jpg", cards[1].Image)
}

func TestTopCardsCappedAtEight(t *testing.T) {
	books := make([]models.Book, 12)
	for i := range books {
		books[i] = models.Book{Title: string(rune('A' + i)), Top: true}
	}

	assert.Len(t, TopCards(books, nil), 8)
}

func TestFallbackBooksHasFullCatalog(t *testing.T) {
	books := FallbackBooks()

	assert.Len(t, books, 25)
	assert.Equal(t, "The Great Gatsby", books[0].Title)
	assert.Equal(t, "Where the Crawdads Sing", books[24].Title)
}

func TestLoadCatalogFromFiles(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "database.json")
	topPath := filepath.Join(dir, "top-selling.json")

	require.NoError(t, os.WriteFile(catalogPath, []byte(`[
		{"id": 1, "title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "category": "Fantasy", "cover": "images/book7.jpg"},
		{"title": "1984"}
	]`), 0644))
	require.NoError(t, os.WriteFile(topPath, []byte(`[{"title": "the hobbit"}]`), 0644))

	svc := NewCatalogService(catalogPath, topPath, "http://localhost:8080")
	books, overlay, err := svc.LoadCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, books, 2)
	assert.True(t, books[0].Top) // flagged by the overlay
	assert.Equal(t, "Unknown", books[1].Author)
	assert.Len(t, overlay, 1)
}

func TestLoadCatalogMissingCatalogIsError(t *testing.T) {
	dir := t.TempDir()
	svc := NewCatalogService(filepath.Join(dir, "missing.json"), filepath.Join(dir, "also-missing.json"), "http://localhost:8080")

	_, _, err := svc.LoadCatalog(context.Background())
	assert.Error(t, err)
}

func TestLoadCatalogBrokenOverlayIsTolerated(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "database.json")
	topPath := filepath.Join(dir, "top-selling.json")

	require.NoError(t, os.WriteFile(catalogPath, []byte(`[{"title": "A"}]`), 0644))
	require.NoError(t, os.WriteFile(topPath, []byte(`{broken`), 0644))

	svc := NewCatalogService(catalogPath, topPath, "http://localhost:8080")
	books, overlay, err := svc.LoadCatalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Empty(t, overlay)
}

func TestRenderStorefrontHTMLWiresCartActions(t *testing.T) {
	t.Chdir("..") // the template path is relative to the module root

	svc := NewCatalogService("data/database.json", "data/top-selling.json", "http://localhost:8080")
	books := []models.Book{{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien", Price: 399, Category: "Fantasy", Image: "images/book7.jpg"}}

	html, err := svc.RenderStorefrontHTML(books, nil)
	require.NoError(t, err)

	// Every card carries both cart actions and a broken-image fallback
	assert.Contains(t, html, `data-title="The Hobbit"`)
	assert.Contains(t, html, `<button class="add-btn">Add to Cart</button>`)
	assert.Contains(t, html, `<button class="buy-btn">Buy Now</button>`)
	assert.Contains(t, html, "/cart/add")
	assert.Contains(t, html, "/cart/buy-now")
	assert.Contains(t, html, "images/placeholder-book.jpg")
}
