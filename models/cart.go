package models

// CartItem is a book plus quantity, persisted under the "cart" blackboard key
type CartItem struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Cover    string  `json:"cover"`
	Category string  `json:"category,omitempty"`
	Quantity int     `json:"quantity"`
}

// AddToCartRequest represents the storefront add-to-cart / buy-now payload.
// Example: {"title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "cover": "images/book7.jpg"}
type AddToCartRequest struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Cover    string  `json:"cover"`
	Category string  `json:"category,omitempty"`
}

// CartResponse represents the cart contents plus the badge count
type CartResponse struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	Message    string     `json:"message,omitempty"`
}
