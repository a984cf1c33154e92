package repository

import (
	"log"

	"readora-admin/blackboard"
	"readora-admin/models"
)

// CartRepository persists the storefront cart to the blackboard under the
// "cart" key
type CartRepository struct {
	store *blackboard.Store
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(store *blackboard.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// Get returns the current cart contents
func (r *CartRepository) Get() []models.CartItem {
	cart := []models.CartItem{}
	r.store.Load(blackboard.KeyCart, &cart)
	return cart
}

// Add puts a book in the cart. Items are matched by exact title, not id, so
// adding the same title twice increments the quantity of the single entry.
// Two distinct books sharing a title would collide here; kept for parity
// with the storefront behavior.
func (r *CartRepository) Add(req *models.AddToCartRequest) (bool, error) {
	cart := r.Get()

	for i := range cart {
		if cart[i].Title == req.Title {
			cart[i].Quantity++
			if err := r.store.Save(blackboard.KeyCart, cart); err != nil {
				return false, err
			}
			log.Printf("🛒 Cart: quantity updated for %q (now %d)", req.Title, cart[i].Quantity)
			return true, nil
		}
	}

	cart = append(cart, models.CartItem{
		Title:    req.Title,
		Author:   req.Author,
		Price:    req.Price,
		Cover:    req.Cover,
		Category: req.Category,
		Quantity: 1,
	})
	if err := r.store.Save(blackboard.KeyCart, cart); err != nil {
		return false, err
	}
	log.Printf("🛒 Cart: added %q", req.Title)
	return false, nil
}

// ReplaceWith clears the cart and puts a single quantity-1 item in it,
// the buy-now flow
func (r *CartRepository) ReplaceWith(req *models.AddToCartRequest) error {
	cart := []models.CartItem{{
		Title:    req.Title,
		Author:   req.Author,
		Price:    req.Price,
		Cover:    req.Cover,
		Category: req.Category,
		Quantity: 1,
	}}
	if err := r.store.Save(blackboard.KeyCart, cart); err != nil {
		return err
	}
	log.Printf("🛒 Cart: replaced with %q (buy now)", req.Title)
	return nil
}

// Clear empties the cart
func (r *CartRepository) Clear() error {
	return r.store.Save(blackboard.KeyCart, []models.CartItem{})
}
