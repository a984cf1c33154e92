package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"readora-admin/blackboard"
	"readora-admin/db"
	"readora-admin/models"
)

// OrderPgRepository is the postgres-backed implementation of the order
// repository. Items and notes are stored as JSONB documents because orders
// carry a denormalized customer snapshot and free-form line items, not
// relational references.
type OrderPgRepository struct {
	store *blackboard.Store // shared order id counter lives on the blackboard either way
}

// NewOrderPgRepository creates a new OrderPgRepository
func NewOrderPgRepository(store *blackboard.Store) *OrderPgRepository {
	return &OrderPgRepository{store: store}
}

// Ensure OrderPgRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderPgRepository)(nil)

const orderColumns = `id, order_date, customer_name, customer_email, customer_phone, customer_address, city, pincode, items, total, status, payment, notes`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	var orderDate time.Time
	var itemsJSON, notesJSON []byte

	err := row.Scan(&o.ID, &orderDate, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CustomerAddress, &o.City, &o.Pincode, &itemsJSON, &o.Total, &o.Status, &o.Payment, &notesJSON)
	if err != nil {
		return nil, err
	}

	o.Date = orderDate.Format(time.RFC3339)
	o.Items = []models.OrderItem{}
	o.Notes = []models.OrderNote{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			log.Printf("⚠️  scanOrder: invalid items JSON for order %s: %v", o.ID, err)
		}
	}
	if len(notesJSON) > 0 {
		if err := json.Unmarshal(notesJSON, &o.Notes); err != nil {
			log.Printf("⚠️  scanOrder: invalid notes JSON for order %s: %v", o.ID, err)
		}
	}
	return &o, nil
}

// List returns orders matching the filters, newest first
func (r *OrderPgRepository) List(ctx context.Context, params models.OrderListParams) ([]models.Order, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(id ILIKE $%d OR customer_name ILIKE $%d OR customer_email ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}
	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, params.Status)
		argIndex++
	}
	switch params.Date {
	case "today":
		conditions = append(conditions, "order_date::date = now()::date")
	case "week":
		conditions = append(conditions, "order_date >= now() - interval '7 days'")
	case "month":
		conditions = append(conditions, "order_date >= now() - interval '30 days'")
	}

	query := fmt.Sprintf("SELECT %s FROM orders", orderColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY order_date DESC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListOrders: query failed: %v", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Printf("❌ ListOrders: scan failed: %v", err)
			continue
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// GetByID returns the order with the given id
func (r *OrderPgRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)
	o, err := scanOrder(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

// Create inserts a new order
func (r *OrderPgRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = r.store.NextOrderID()
	}
	if order.Date == "" {
		order.Date = time.Now().Format(time.RFC3339)
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.Payment == "" {
		order.Payment = "cod"
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	if order.Notes == nil {
		order.Notes = []models.OrderNote{}
	}

	orderDate, err := time.Parse(time.RFC3339, order.Date)
	if err != nil {
		orderDate = time.Now()
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	notesJSON, err := json.Marshal(order.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	query := `
		INSERT INTO orders (id, order_date, customer_name, customer_email, customer_phone, customer_address, city, pincode, items, total, status, payment, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = db.DB.ExecContext(ctx, query, order.ID, orderDate, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.CustomerAddress, order.City, order.Pincode, itemsJSON,
		order.Total, order.Status, order.Payment, notesJSON)
	if err != nil {
		log.Printf("❌ CreateOrder: insert failed: %v", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	log.Printf("✓ CreateOrder: created order id=%s total=%s", order.ID, order.Total)
	return nil
}

// UpdateStatus overwrites the status of one order and appends the optional
// note, all inside one transaction
func (r *OrderPgRepository) UpdateStatus(ctx context.Context, id string, status string, note string) (*models.Order, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var notesJSON []byte
	err = tx.QueryRowContext(ctx, "SELECT notes FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&notesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	notes := []models.OrderNote{}
	if len(notesJSON) > 0 {
		if err := json.Unmarshal(notesJSON, &notes); err != nil {
			log.Printf("⚠️  UpdateOrderStatus: invalid notes JSON for order %s: %v", id, err)
		}
	}
	if note != "" {
		notes = append(notes, models.OrderNote{
			Date: time.Now().Format(time.RFC3339),
			Note: note,
			Type: "status_update",
		})
	}
	newNotesJSON, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notes: %w", err)
	}

	_, err = tx.ExecContext(ctx, "UPDATE orders SET status = $1, notes = $2 WHERE id = $3", status, newNotesJSON, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ UpdateOrderStatus: order id=%s status=%s", id, status)
	return r.GetByID(ctx, id)
}

// BulkUpdateStatus overwrites the status of every selected order
func (r *OrderPgRepository) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, status)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf("UPDATE orders SET status = $1 WHERE id IN (%s)", strings.Join(placeholders, ", "))
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ BulkUpdateStatus: update failed: %v", err)
		return 0, fmt.Errorf("failed to bulk update orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	affected, _ := result.RowsAffected()
	log.Printf("✓ BulkUpdateStatus: %d/%d orders set to %s", affected, len(ids), status)
	return int(affected), nil
}

// Delete removes the order with the given id unconditionally
func (r *OrderPgRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("order with id %s not found", id)
	}

	log.Printf("✓ DeleteOrder: deleted order id=%s", id)
	return nil
}

// Stats returns the per-status counters above the orders table
func (r *OrderPgRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'shipped'),
		       COUNT(*) FILTER (WHERE status = 'delivered')
		FROM orders
	`
	stats := &models.OrderStats{}
	err := db.DB.QueryRowContext(ctx, query).Scan(&stats.Pending, &stats.Confirmed, &stats.Shipped, &stats.Delivered)
	if err != nil {
		log.Printf("❌ OrderStats: query failed: %v", err)
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}
	return stats, nil
}
