package models

// Book represents a single book in the admin catalog
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	ISBN        string  `json:"isbn"`
	Top         bool    `json:"top"` // marks the book as top-selling on the storefront
}

// CatalogEntry is the raw shape of one entry in the catalog JSON source.
// Only title is guaranteed; everything else is optional and defaulted on load.
type CatalogEntry struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Cover       string  `json:"cover"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	ISBN        string  `json:"isbn"`
	Top         bool    `json:"top"`
}

// TopSellingEntry is one entry from the top-selling overlay JSON.
// Entries without a matching catalog title render as extra storefront cards.
type TopSellingEntry struct {
	Title  string  `json:"title"`
	Author string  `json:"author,omitempty"`
	Price  float64 `json:"price,omitempty"`
	Cover  string  `json:"cover,omitempty"`
	Image  string  `json:"image,omitempty"`
}

// SaveBookRequest represents the request body for creating or updating a book.
// Description and ISBN are optional; on update, omitted values are preserved.
// Example: {"title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "category": "Fantasy", "stock": 12, "top": true}
type SaveBookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Description *string  `json:"description,omitempty"`
	ISBN        *string  `json:"isbn,omitempty"`
	Top         bool     `json:"top"`
}

// TopCard is one card in the top-selling section: either a flagged catalog
// book or an overlay-only entry.
type TopCard struct {
	Title  string  `json:"title"`
	Author string  `json:"author,omitempty"`
	Price  float64 `json:"price,omitempty"`
	Image  string  `json:"image"`
}

// BookListParams represents filtering and sorting parameters for books
type BookListParams struct {
	Search   string
	Category string
	SortBy   string // title | author | price | category
}

// BookListResponse represents the response for listing books
type BookListResponse struct {
	Books []Book `json:"books"`
	Total int    `json:"total"`
}
