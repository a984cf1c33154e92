package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"readora-admin/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const placeholderImage = "images/placeholder-book.jpg"

// CatalogService loads the book catalog and the optional top-selling overlay
// from their configured sources, and renders the public storefront page.
type CatalogService struct {
	catalogSource string // file path or http(s) URL for the catalog JSON
	topSource     string // file path or http(s) URL for the top-selling JSON
	baseURL       string // base URL of this server, used for PDF rendering
	client        *http.Client
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogSource, topSource, baseURL string) *CatalogService {
	return &CatalogService{
		catalogSource: catalogSource,
		topSource:     topSource,
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

// fetchJSON reads raw JSON from a source that is either a local file path or
// an http(s) URL.
func (s *CatalogService) fetchJSON(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", source, err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("source %s returned status %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, nil
}

// LoadCatalog fetches the catalog and top-selling sources in parallel and
// returns the normalized book list plus the raw overlay entries. A missing or
// broken overlay is not an error; a missing catalog is, and callers should
// fall back to FallbackBooks.
func (s *CatalogService) LoadCatalog(ctx context.Context) ([]models.Book, []models.TopSellingEntry, error) {
	var (
		wg          sync.WaitGroup
		catalogData []byte
		catalogErr  error
		topData     []byte
		topErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		catalogData, catalogErr = s.fetchJSON(ctx, s.catalogSource)
	}()
	go func() {
		defer wg.Done()
		topData, topErr = s.fetchJSON(ctx, s.topSource)
	}()
	wg.Wait()

	if catalogErr != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", catalogErr)
	}

	var entries []models.CatalogEntry
	if err := json.Unmarshal(catalogData, &entries); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	books := NormalizeCatalog(entries)

	var topEntries []models.TopSellingEntry
	if topErr != nil {
		log.Printf("⚠️ Top-selling source unavailable, continuing without overlay: %v", topErr)
	} else if err := json.Unmarshal(topData, &topEntries); err != nil {
		log.Printf("⚠️ Top-selling JSON parse failed, continuing without overlay: %v", err)
		topEntries = nil
	}

	MergeTopSelling(books, topEntries)
	return books, topEntries, nil
}

// NormalizeCatalog converts raw catalog entries into books, filling defaults
// for every optional field. Entries without an id get sequential ids, counted
// from 1 and advanced only when actually used.
func NormalizeCatalog(entries []models.CatalogEntry) []models.Book {
	books := make([]models.Book, 0, len(entries))
	nextID := 1
	for _, e := range entries {
		id := e.ID
		if id == 0 {
			id = nextID
			nextID++
		}
		image := e.Cover
		if image == "" {
			image = e.Image
		}
		if image == "" {
			image = placeholderImage
		}
		title := e.Title
		if title == "" {
			title = "Untitled"
		}
		author := e.Author
		if author == "" {
			author = "Unknown"
		}
		category := e.Category
		if category == "" {
			category = "Uncategorized"
		}
		books = append(books, models.Book{
			ID:          id,
			Title:       title,
			Author:      author,
			Price:       e.Price,
			Category:    category,
			Image:       image,
			Description: e.Description,
			Stock:       e.Stock,
			ISBN:        e.ISBN,
			Top:         e.Top,
		})
	}
	return books
}

// MergeTopSelling flags books whose title matches an overlay entry,
// case-insensitively. Books already flagged stay flagged.
func MergeTopSelling(books []models.Book, overlay []models.TopSellingEntry) {
	if len(overlay) == 0 {
		return
	}
	titles := make(map[string]bool, len(overlay))
	for _, t := range overlay {
		titles[strings.ToLower(t.Title)] = true
	}
	for i := range books {
		if !books[i].Top && titles[strings.ToLower(books[i].Title)] {
			books[i].Top = true
		}
	}
}

// TopCards combines flagged catalog books with overlay-only entries whose
// titles do not appear in the catalog, capped at 8 cards.
func TopCards(books []models.Book, overlay []models.TopSellingEntry) []models.TopCard {
	cards := make([]models.TopCard, 0, 8)
	bookTitles := make(map[string]bool, len(books))
	for _, b := range books {
		bookTitles[strings.ToLower(b.Title)] = true
		if b.Top {
			cards = append(cards, models.TopCard{
				Title:  b.Title,
				Author: b.Author,
				Price:  b.Price,
				Image:  b.Image,
			})
		}
	}
	for _, t := range overlay {
		title := strings.ToLower(t.Title)
		if title == "" || bookTitles[title] {
			continue
		}
		image := t.Cover
		if image == "" {
			image = t.Image
		}
		if image == "" {
			image = placeholderImage
		}
		cards = append(cards, models.TopCard{
			Title:  t.Title,
			Author: t.Author,
			Price:  t.Price,
			Image:  image,
		})
	}
	if len(cards) > 8 {
		cards = cards[:8]
	}
	return cards
}

// FallbackBooks returns the built-in catalog used when no catalog source can
// be loaded.
func FallbackBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Price: 299, Category: "Fiction", Image: "images/book1.jpg"},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Price: 349, Category: "Fiction", Image: "images/book2.jpg"},
		{ID: 3, Title: "1984", Author: "George Orwell", Price: 279, Category: "Fiction", Image: "images/book3.jpg"},
		{ID: 4, Title: "Pride and Prejudice", Author: "Jane Austen", Price: 329, Category: "Romance", Image: "images/book4.jpg"},
		{ID: 5, Title: "The Catcher in the Rye", Author: "J.D. Salinger", Price: 299, Category: "Fiction", Image: "images/book5.jpg"},
		{ID: 6, Title: "Lord of the Flies", Author: "William Golding", Price: 269, Category: "Fiction", Image: "images/book6.jpg"},
		{ID: 7, Title: "The Hobbit", Author: "J.R.R. Tolkien", Price: 399, Category: "Fantasy", Image: "images/book7.jpg"},
		{ID: 8, Title: "Fahrenheit 451", Author: "Ray Bradbury", Price: 289, Category: "Science Fiction", Image: "images/book8.jpg"},
		{ID: 9, Title: "Jane Eyre", Author: "Charlotte Brontë", Price: 319, Category: "Romance", Image: "images/book9.jpg"},
		{ID: 10, Title: "The Alchemist", Author: "Paulo Coelho", Price: 259, Category: "Philosophy", Image: "images/book10.jpg"},
		{ID: 11, Title: "Brave New World", Author: "Aldous Huxley", Price: 309, Category: "Science Fiction", Image: "images/book11.jpg"},
		{ID: 12, Title: "The Picture of Dorian Gray", Author: "Oscar Wilde", Price: 289, Category: "Fiction", Image: "images/book12.jpg"},
		{ID: 13, Title: "Wuthering Heights", Author: "Emily Brontë", Price: 299, Category: "Romance", Image: "images/book13.jpg"},
		{ID: 14, Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", Price: 599, Category: "Fantasy", Image: "images/book14.jpg"},
		{ID: 15, Title: "Animal Farm", Author: "George Orwell", Price: 199, Category: "Fiction", Image: "images/book15.jpg"},
		{ID: 16, Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Price: 379, Category: "Fiction", Image: "images/book16.jpg"},
		{ID: 17, Title: "The Kite Runner", Author: "Khaled Hosseini", Price: 329, Category: "Fiction", Image: "images/book17.jpg"},
		{ID: 18, Title: "The Da Vinci Code", Author: "Dan Brown", Price: 359, Category: "Thriller", Image: "images/book18.jpg"},
		{ID: 19, Title: "The Hunger Games", Author: "Suzanne Collins", Price: 299, Category: "Young Adult", Image: "images/book19.jpg"},
		{ID: 20, Title: "Life of Pi", Author: "Yann Martel", Price: 289, Category: "Fiction", Image: "images/book20.jpg"},
		{ID: 21, Title: "The Book Thief", Author: "Markus Zusak", Price: 339, Category: "Fiction", Image: "images/book21.jpg"},
		{ID: 22, Title: "The Fault in Our Stars", Author: "John Green", Price: 269, Category: "Young Adult", Image: "images/book22.jpg"},
		{ID: 23, Title: "Gone Girl", Author: "Gillian Flynn", Price: 349, Category: "Thriller", Image: "images/book23.jpg"},
		{ID: 24, Title: "The Help", Author: "Kathryn Stockett", Price: 319, Category: "Fiction", Image: "images/book24.jpg"},
		{ID: 25, Title: "Where the Crawdads Sing", Author: "Delia Owens", Price: 379, Category: "Fiction", Image: "images/book25.jpg"},
	}
}

// RenderStorefrontHTML renders the public storefront page from the template
// in templates/storefront.html.
func (s *CatalogService) RenderStorefrontHTML(books []models.Book, topCards []models.TopCard) (string, error) {
	templateData := struct {
		Books       []models.Book
		TopCards    []models.TopCard
		GeneratedAt string
	}{
		Books:       books,
		TopCards:    topCards,
		GeneratedAt: time.Now().Format("January 2, 2006"),
	}

	templatePath := filepath.Join("templates", "storefront.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GeneratePDF renders the storefront page in headless Chrome and returns it
// as an A4 PDF.
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	chromePath := detectChromePath()

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if chromePath != "" {
		log.Printf("🔍 Using Chrome at %s", chromePath)
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	} else {
		// Let chromedp auto-detect (may fail in containers)
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	}
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/"

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
