package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"readora-admin/blackboard"
	"readora-admin/models"
	"readora-admin/utils"
)

// OrderRepository persists orders to the blackboard under the "orders" key
type OrderRepository struct {
	store *blackboard.Store
	now   func() time.Time
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(store *blackboard.Store) *OrderRepository {
	return &OrderRepository{store: store, now: time.Now}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// loadAll reads the stored orders and normalizes every record so the screens
// can rely on a complete structure. When the store is empty, a single sample
// order is seeded so the admin pages have data to show. Normalization is
// written back the first time it fills anything in, so assigned ids stay
// stable across requests.
func (r *OrderRepository) loadAll() []models.Order {
	orders := []models.Order{}
	r.store.Load(blackboard.KeyOrders, &orders)

	if len(orders) == 0 {
		orders = r.seedSampleOrders()
	}

	changed := false
	for i := range orders {
		if normalizeOrder(&orders[i], r.store, r.now()) {
			changed = true
		}
	}
	if changed {
		if err := r.saveAll(orders); err != nil {
			log.Printf("⚠️  OrderRepository: failed to persist normalized orders: %v", err)
		}
	}
	return orders
}

func (r *OrderRepository) saveAll(orders []models.Order) error {
	return r.store.Save(blackboard.KeyOrders, orders)
}

// normalizeOrder fills defaults for every missing field and reports whether
// it changed the record.
func normalizeOrder(o *models.Order, store *blackboard.Store, now time.Time) bool {
	changed := false
	if o.ID == "" {
		o.ID = store.NextOrderID()
		changed = true
	}
	if o.Date == "" {
		o.Date = now.Format(time.RFC3339)
		changed = true
	}
	if o.CustomerName == "" {
		o.CustomerName = "Unknown Customer"
		changed = true
	}
	if o.CustomerEmail == "" {
		o.CustomerEmail = "unknown@email.com"
		changed = true
	}
	if o.CustomerPhone == "" {
		o.CustomerPhone = "N/A"
		changed = true
	}
	if o.CustomerAddress == "" {
		o.CustomerAddress = "N/A"
		changed = true
	}
	if o.City == "" {
		o.City = "N/A"
		changed = true
	}
	if o.Pincode == "" {
		o.Pincode = "N/A"
		changed = true
	}
	if o.Items == nil {
		o.Items = []models.OrderItem{}
		changed = true
	}
	if o.Total == "" {
		o.Total = "₹0"
		changed = true
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
		changed = true
	}
	if o.Payment == "" {
		o.Payment = "cod"
		changed = true
	}
	if o.Notes == nil {
		o.Notes = []models.OrderNote{}
		changed = true
	}
	return changed
}

func (r *OrderRepository) seedSampleOrders() []models.Order {
	item := models.OrderItem{
		Title:    "The Great Gatsby",
		Author:   "F. Scott Fitzgerald",
		Price:    299,
		Cover:    "images/book1.jpg",
		Category: "Fiction",
		Quantity: 2,
	}

	orders := []models.Order{{
		ID:              "10001",
		Date:            r.now().AddDate(0, 0, -5).Format(time.RFC3339),
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
		CustomerPhone:   "+91 9876543210",
		CustomerAddress: "123 Main Street",
		City:            "Mumbai",
		Pincode:         "400001",
		Items:           []models.OrderItem{item},
		Total:           utils.FormatINR(int64(item.Price) * int64(item.Quantity)),
		Status:          models.OrderStatusConfirmed,
		Payment:         "cod",
		Notes:           []models.OrderNote{},
	}}

	if err := r.saveAll(orders); err != nil {
		log.Printf("⚠️  OrderRepository: failed to persist sample order: %v", err)
	} else {
		log.Printf("📦 OrderRepository: seeded sample order id=%s", orders[0].ID)
	}
	return orders
}

// matchesParams applies the search / status / date-window filters the orders
// screen and its CSV export share
func matchesParams(o *models.Order, params models.OrderListParams, now time.Time) bool {
	term := strings.ToLower(params.Search)
	matchesSearch := term == "" ||
		strings.Contains(strings.ToLower(o.ID), term) ||
		strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), term)
	if !matchesSearch {
		return false
	}

	if params.Status != "" && o.Status != params.Status {
		return false
	}

	if params.Date != "" {
		orderDate, err := time.Parse(time.RFC3339, o.Date)
		if err != nil {
			return false
		}
		switch params.Date {
		case "today":
			y1, m1, d1 := orderDate.Date()
			y2, m2, d2 := now.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				return false
			}
		case "week":
			if orderDate.Before(now.Add(-7 * 24 * time.Hour)) {
				return false
			}
		case "month":
			if orderDate.Before(now.Add(-30 * 24 * time.Hour)) {
				return false
			}
		}
	}

	return true
}

// List returns orders matching the filters, newest first
func (r *OrderRepository) List(ctx context.Context, params models.OrderListParams) ([]models.Order, error) {
	orders := r.loadAll()
	now := r.now()

	filtered := make([]models.Order, 0, len(orders))
	for i := range orders {
		if matchesParams(&orders[i], params, now) {
			filtered = append(filtered, orders[i])
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return orderTime(filtered[i].Date).After(orderTime(filtered[j].Date))
	})

	return filtered, nil
}

func orderTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GetByID returns the order with the given id
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	for _, o := range r.loadAll() {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, fmt.Errorf("order with id %s not found", id)
}

// Create appends a new order to the stored list
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	orders := r.loadAll()
	normalizeOrder(order, r.store, r.now())
	orders = append(orders, *order)

	if err := r.saveAll(orders); err != nil {
		log.Printf("❌ CreateOrder: failed to persist: %v", err)
		return err
	}
	log.Printf("✓ CreateOrder: created order id=%s total=%s", order.ID, order.Total)
	return nil
}

// UpdateStatus overwrites the status of one order. Transitions are not
// validated: any status may follow any other. A non-empty note is appended
// with a timestamp and the status_update type.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status string, note string) (*models.Order, error) {
	orders := r.loadAll()

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders[i].Status = status
		if note != "" {
			orders[i].Notes = append(orders[i].Notes, models.OrderNote{
				Date: r.now().Format(time.RFC3339),
				Note: note,
				Type: "status_update",
			})
		}

		if err := r.saveAll(orders); err != nil {
			log.Printf("❌ UpdateOrderStatus: failed to persist: %v", err)
			return nil, err
		}
		log.Printf("✓ UpdateOrderStatus: order id=%s status=%s", id, status)
		out := orders[i]
		return &out, nil
	}

	return nil, fmt.Errorf("order with id %s not found", id)
}

// BulkUpdateStatus overwrites the status of every selected order and returns
// how many were touched. Ids that match nothing are skipped silently.
func (r *OrderRepository) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int, error) {
	orders := r.loadAll()

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	updated := 0
	for i := range orders {
		if selected[orders[i].ID] {
			orders[i].Status = status
			updated++
		}
	}

	if updated > 0 {
		if err := r.saveAll(orders); err != nil {
			log.Printf("❌ BulkUpdateStatus: failed to persist: %v", err)
			return 0, err
		}
	}

	log.Printf("✓ BulkUpdateStatus: %d/%d orders set to %s", updated, len(ids), status)
	return updated, nil
}

// Delete removes the order with the given id unconditionally
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	orders := r.loadAll()

	kept := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}

	if len(kept) == len(orders) {
		return fmt.Errorf("order with id %s not found", id)
	}

	if err := r.saveAll(kept); err != nil {
		log.Printf("❌ DeleteOrder: failed to persist: %v", err)
		return err
	}
	log.Printf("✓ DeleteOrder: deleted order id=%s", id)
	return nil
}

// Stats returns the per-status counters above the orders table
func (r *OrderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	stats := &models.OrderStats{}
	for _, o := range r.loadAll() {
		switch o.Status {
		case models.OrderStatusPending:
			stats.Pending++
		case models.OrderStatusConfirmed:
			stats.Confirmed++
		case models.OrderStatusShipped:
			stats.Shipped++
		case models.OrderStatusDelivered:
			stats.Delivered++
		}
	}
	return stats, nil
}
