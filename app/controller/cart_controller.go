package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"readora-admin/models"
	"readora-admin/repository"
)

// CartController handles HTTP requests for the storefront cart
type CartController struct {
	repository repository.CartRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(repo repository.CartRepositoryInterface) *CartController {
	return &CartController{
		repository: repo,
	}
}

// Cart handles GET and DELETE /cart
// Example response:
// {
//   "items": [{"title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "quantity": 2}],
//   "totalItems": 2
// }
func (c *CartController) Cart(w http.ResponseWriter, r *http.Request) {
	log.Printf("🛒 Cart: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		items := c.repository.Get()
		log.Printf("✅ Cart: Successfully fetched %d cart lines", len(items))
		writeJSON(w, cartResponse(items, ""), "Cart")

	case http.MethodDelete:
		if err := c.repository.Clear(); err != nil {
			log.Printf("❌ Cart: Error clearing cart: %v", err)
			http.Error(w, fmt.Sprintf("Failed to clear cart: %v", err), http.StatusInternalServerError)
			return
		}
		log.Printf("✅ Cart: Cart cleared")
		w.WriteHeader(http.StatusNoContent)

	default:
		log.Printf("❌ Cart: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// AddToCart handles POST /cart/add
// Example request: {"title": "The Hobbit", "author": "J.R.R. Tolkien", "price": 399, "cover": "images/book7.jpg"}
func (c *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("🛒 AddToCart: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ AddToCart: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := c.decodeCartItem(w, r, "AddToCart")
	if !ok {
		return
	}

	merged, err := c.repository.Add(req)
	if err != nil {
		log.Printf("❌ AddToCart: Error adding to cart: %v", err)
		http.Error(w, fmt.Sprintf("Failed to add to cart: %v", err), http.StatusInternalServerError)
		return
	}

	message := fmt.Sprintf("%s added to cart", req.Title)
	if merged {
		message = fmt.Sprintf("Increased %s quantity in cart", req.Title)
	}

	log.Printf("✅ AddToCart: %s", message)

	writeJSON(w, cartResponse(c.repository.Get(), message), "AddToCart")
}

// BuyNow handles POST /cart/buy-now: the cart is replaced with just this
// item at quantity 1.
func (c *CartController) BuyNow(w http.ResponseWriter, r *http.Request) {
	log.Printf("🛒 BuyNow: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ BuyNow: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := c.decodeCartItem(w, r, "BuyNow")
	if !ok {
		return
	}

	if err := c.repository.ReplaceWith(req); err != nil {
		log.Printf("❌ BuyNow: Error replacing cart: %v", err)
		http.Error(w, fmt.Sprintf("Failed to replace cart: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ BuyNow: Cart replaced with %s", req.Title)

	writeJSON(w, cartResponse(c.repository.Get(), fmt.Sprintf("Proceeding to checkout with %s", req.Title)), "BuyNow")
}

func (c *CartController) decodeCartItem(w http.ResponseWriter, r *http.Request, op string) (*models.AddToCartRequest, bool) {
	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ %s: Failed to decode request body: %v", op, err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return nil, false
	}
	if strings.TrimSpace(req.Title) == "" {
		log.Printf("❌ %s: title is required", op)
		http.Error(w, "title is required", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// cartResponse builds the cart payload with the badge counter, which counts
// quantities rather than lines.
func cartResponse(items []models.CartItem, message string) models.CartResponse {
	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}
	return models.CartResponse{
		Items:      items,
		TotalItems: totalItems,
		Message:    message,
	}
}
