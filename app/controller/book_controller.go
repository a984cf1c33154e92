package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"readora-admin/models"
	"readora-admin/repository"
	"readora-admin/service"
)

// BookController handles HTTP requests for the admin book catalog
type BookController struct {
	repository   repository.BookRepositoryInterface
	coverService *service.CoverService
	topOverlay   []models.TopSellingEntry
}

// NewBookController creates a new BookController
func NewBookController(repo repository.BookRepositoryInterface, coverService *service.CoverService, topOverlay []models.TopSellingEntry) *BookController {
	return &BookController{
		repository:   repo,
		coverService: coverService,
		topOverlay:   topOverlay,
	}
}

// Books handles GET and POST /admin/books
// Example response:
// {
//   "books": [{"id": 7, "title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "category": "Fantasy", ...}],
//   "total": 1
// }
func (c *BookController) Books(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Books: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		c.listBooks(w, r)
	case http.MethodPost:
		c.createBook(w, r)
	default:
		log.Printf("❌ Books: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *BookController) listBooks(w http.ResponseWriter, r *http.Request) {
	params := models.BookListParams{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		SortBy:   r.URL.Query().Get("sort"),
	}

	books := c.repository.List(params)

	log.Printf("✅ Books: Successfully fetched %d books", len(books))

	response := models.BookListResponse{
		Books: books,
		Total: len(books),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Books: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (c *BookController) createBook(w http.ResponseWriter, r *http.Request) {
	var req models.SaveBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Books: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		log.Printf("❌ Books: title is required")
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	book := c.repository.Create(&req)

	log.Printf("✅ Books: Successfully created book id=%d title=%s", book.ID, book.Title)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(book); err != nil {
		log.Printf("❌ Books: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// TopSelling handles GET /admin/books/top
// Example response:
// [{"title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "image": "images/book7.jpg"}]
func (c *BookController) TopSelling(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 TopSelling: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ TopSelling: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cards := service.TopCards(c.repository.All(), c.topOverlay)

	log.Printf("✅ TopSelling: Successfully built %d top cards", len(cards))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cards); err != nil {
		log.Printf("❌ TopSelling: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// BookByID handles GET, PUT and DELETE /admin/books/:id, plus
// GET /admin/books/:id/cover?size=thumb|medium
func (c *BookController) BookByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 BookByID: Received %s request to %s", r.Method, r.URL.Path)

	// Path format: /admin/books/{id} or /admin/books/{id}/cover
	path := strings.TrimPrefix(r.URL.Path, "/admin/books/")
	if path == "" {
		http.Error(w, "book id parameter is required", http.StatusBadRequest)
		return
	}

	wantCover := false
	idStr := strings.TrimSuffix(path, "/cover")
	if idStr != path {
		wantCover = true
	}
	if strings.Contains(idStr, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	bookID, err := strconv.Atoi(idStr)
	if err != nil {
		log.Printf("❌ BookByID: Invalid book id: %s", idStr)
		http.Error(w, "invalid book id parameter", http.StatusBadRequest)
		return
	}

	if wantCover {
		c.getCover(w, r, bookID)
		return
	}

	switch r.Method {
	case http.MethodGet:
		c.getBook(w, bookID)
	case http.MethodPut:
		c.updateBook(w, r, bookID)
	case http.MethodDelete:
		c.deleteBook(w, bookID)
	default:
		log.Printf("❌ BookByID: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *BookController) getBook(w http.ResponseWriter, bookID int) {
	book, err := c.repository.GetByID(bookID)
	if err != nil {
		log.Printf("❌ BookByID: Error fetching book: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch book: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ BookByID: Successfully fetched book id=%d", bookID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(book); err != nil {
		log.Printf("❌ BookByID: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (c *BookController) updateBook(w http.ResponseWriter, r *http.Request, bookID int) {
	var req models.SaveBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ BookByID: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	book, err := c.repository.Update(bookID, &req)
	if err != nil {
		log.Printf("❌ BookByID: Error updating book: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to update book: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ BookByID: Successfully updated book id=%d", bookID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(book); err != nil {
		log.Printf("❌ BookByID: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (c *BookController) deleteBook(w http.ResponseWriter, bookID int) {
	if err := c.repository.Delete(bookID); err != nil {
		log.Printf("❌ BookByID: Error deleting book: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete book: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ BookByID: Successfully deleted book id=%d", bookID)

	w.WriteHeader(http.StatusNoContent)
}

func (c *BookController) getCover(w http.ResponseWriter, r *http.Request, bookID int) {
	if r.Method != http.MethodGet {
		log.Printf("❌ BookByID: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "thumb"
	}

	ctx := context.Background()
	data, err := c.coverService.GetCover(ctx, bookID, size)
	if err != nil {
		log.Printf("❌ BookByID: Error fetching cover: %v", err)
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch cover: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ BookByID: Successfully served cover for book id=%d size=%s", bookID, size)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ BookByID: Error writing cover bytes: %v", err)
	}
}
