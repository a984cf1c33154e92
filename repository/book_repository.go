package repository

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"readora-admin/models"
)

// BookRepository holds the admin book collection in memory. The catalog JSON
// source is read-only, so edits live only until the next restart.
type BookRepository struct {
	mu    sync.Mutex
	books []models.Book
}

// NewBookRepository creates a new BookRepository
func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

// Ensure BookRepository implements BookRepositoryInterface
var _ BookRepositoryInterface = (*BookRepository)(nil)

// Replace swaps the whole collection, used after a catalog (re)load
func (r *BookRepository) Replace(books []models.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = books
	log.Printf("📚 BookRepository: loaded %d books", len(books))
}

// All returns a copy of the full collection
func (r *BookRepository) All() []models.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Book, len(r.books))
	copy(out, r.books)
	return out
}

// List returns books matching the search term and category, sorted ascending
// by the requested key. The search term matches title, author and category
// case-insensitively; the empty term matches everything.
func (r *BookRepository) List(params models.BookListParams) []models.Book {
	r.mu.Lock()
	defer r.mu.Unlock()

	term := strings.ToLower(params.Search)

	filtered := make([]models.Book, 0, len(r.books))
	for _, b := range r.books {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author), term) ||
			strings.Contains(strings.ToLower(b.Category), term)
		matchesCategory := params.Category == "" || b.Category == params.Category
		if matchesSearch && matchesCategory {
			filtered = append(filtered, b)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch params.SortBy {
		case "title":
			return compareFold(a.Title, b.Title)
		case "author":
			return compareFold(a.Author, b.Author)
		case "price":
			return a.Price < b.Price
		case "category":
			return compareFold(a.Category, b.Category)
		default:
			return false
		}
	})

	return filtered
}

// compareFold reports whether a sorts before b, case-insensitively
func compareFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// GetByID returns the book with the given id
func (r *BookRepository) GetByID(id int) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.books {
		if r.books[i].ID == id {
			b := r.books[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("book with id %d not found", id)
}

// Create adds a new book with id = max existing id + 1
func (r *BookRepository) Create(req *models.SaveBookRequest) *models.Book {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, b := range r.books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}

	book := models.Book{
		ID:       maxID + 1,
		Title:    strings.TrimSpace(req.Title),
		Author:   strings.TrimSpace(req.Author),
		Price:    req.Price,
		Category: req.Category,
		Image:    req.Image,
		Stock:    req.Stock,
		Top:      req.Top,
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if book.Image == "" {
		book.Image = "images/placeholder-book.jpg"
	}

	r.books = append(r.books, book)
	log.Printf("✓ BookRepository: created book id=%d title=%q", book.ID, book.Title)
	return &book
}

// Update overwrites the form-backed fields of an existing book. Description
// and ISBN are preserved when the request omits them, matching the edit form
// which has no inputs for either.
func (r *BookRepository) Update(id int, req *models.SaveBookRequest) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.books {
		if r.books[i].ID != id {
			continue
		}
		b := &r.books[i]
		b.Title = strings.TrimSpace(req.Title)
		b.Author = strings.TrimSpace(req.Author)
		b.Price = req.Price
		b.Category = req.Category
		b.Stock = req.Stock
		b.Top = req.Top
		if req.Image != "" {
			b.Image = req.Image
		}
		if req.Description != nil {
			b.Description = *req.Description
		}
		if req.ISBN != nil {
			b.ISBN = *req.ISBN
		}
		log.Printf("✓ BookRepository: updated book id=%d", id)
		out := *b
		return &out, nil
	}

	return nil, fmt.Errorf("book with id %d not found", id)
}

// Delete removes the book with the given id
func (r *BookRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.books {
		if r.books[i].ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			log.Printf("✓ BookRepository: deleted book id=%d", id)
			return nil
		}
	}
	return fmt.Errorf("book with id %d not found", id)
}
