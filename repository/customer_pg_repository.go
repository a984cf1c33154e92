package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"readora-admin/db"
	"readora-admin/models"
)

// CustomerPgRepository is the postgres-backed implementation of the customer
// repository, selected with STORE_DRIVER=postgres. It keeps the exact
// contract of the blackboard implementation, including timestamp ids.
type CustomerPgRepository struct{}

// NewCustomerPgRepository creates a new CustomerPgRepository
func NewCustomerPgRepository() *CustomerPgRepository {
	return &CustomerPgRepository{}
}

// Ensure CustomerPgRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerPgRepository)(nil)

const customerColumns = `id, name, email, COALESCE(phone, ''), COALESCE(address, ''), status, join_date, total_orders, total_spent, COALESCE(notes, '')`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Status,
		&c.JoinDate, &c.TotalOrders, &c.TotalSpent, &c.Notes)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of customers matching the filters
func (r *CustomerPgRepository) List(ctx context.Context, params models.CustomerListParams) (*models.CustomerListResponse, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone LIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}
	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, params.Status)
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var orderBy string
	switch params.SortBy {
	case "email":
		orderBy = "LOWER(email) ASC"
	case "joinDate":
		orderBy = "join_date DESC"
	case "orders":
		orderBy = "total_orders DESC"
	default:
		orderBy = "LOWER(name) ASC"
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM customers" + where
	if err := db.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("❌ ListCustomers: count failed: %v", err)
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf("SELECT %s FROM customers%s ORDER BY %s LIMIT $%d OFFSET $%d",
		customerColumns, where, orderBy, argIndex, argIndex+1)
	args = append(args, CustomersPerPage, (page-1)*CustomersPerPage)

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListCustomers: query failed: %v", err)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			log.Printf("❌ ListCustomers: scan failed: %v", err)
			continue
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return &models.CustomerListResponse{
		Customers:  customers,
		Total:      total,
		Page:       page,
		PageSize:   CustomersPerPage,
		TotalPages: (total + CustomersPerPage - 1) / CustomersPerPage,
	}, nil
}

// GetByID returns the customer with the given id
func (r *CustomerPgRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns)
	c, err := scanCustomer(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// Create inserts a new customer
func (r *CustomerPgRepository) Create(ctx context.Context, req *models.SaveCustomerRequest) (*models.Customer, error) {
	now := time.Now()
	status := req.Status
	if status == "" {
		status = "active"
	}

	customer := models.Customer{
		ID:       now.UnixMilli(),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		Address:  req.Address,
		Status:   status,
		JoinDate: now.Format("2006-01-02"),
		Notes:    req.Notes,
	}

	query := `
		INSERT INTO customers (id, name, email, phone, address, status, join_date, total_orders, total_spent, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8)
	`
	_, err := db.DB.ExecContext(ctx, query, customer.ID, customer.Name, customer.Email,
		customer.Phone, customer.Address, customer.Status, customer.JoinDate, customer.Notes)
	if err != nil {
		log.Printf("❌ CreateCustomer: insert failed: %v", err)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	log.Printf("✓ CreateCustomer: created customer id=%d name=%q", customer.ID, customer.Name)
	return &customer, nil
}

// Update merges the form fields into an existing customer
func (r *CustomerPgRepository) Update(ctx context.Context, id int64, req *models.SaveCustomerRequest) (*models.Customer, error) {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4, status = $5, notes = $6
		WHERE id = $7
	`
	result, err := db.DB.ExecContext(ctx, query, strings.TrimSpace(req.Name), strings.TrimSpace(req.Email),
		req.Phone, req.Address, req.Status, req.Notes, id)
	if err != nil {
		log.Printf("❌ UpdateCustomer: update failed: %v", err)
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("customer with id %d not found", id)
	}

	log.Printf("✓ UpdateCustomer: updated customer id=%d", id)
	return r.GetByID(ctx, id)
}

// Delete removes exactly one customer by id
func (r *CustomerPgRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		log.Printf("❌ DeleteCustomer: delete failed: %v", err)
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("customer with id %d not found", id)
	}

	log.Printf("✓ DeleteCustomer: deleted customer id=%d", id)
	return nil
}

// Stats returns the counters shown above the customers screen
func (r *CustomerPgRepository) Stats(ctx context.Context) (*models.CustomerStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE join_date >= to_char(date_trunc('month', now()), 'YYYY-MM-DD')),
		       COUNT(*) FILTER (WHERE total_orders > 1)
		FROM customers
	`
	stats := &models.CustomerStats{}
	err := db.DB.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Active, &stats.New, &stats.Repeat)
	if err != nil {
		log.Printf("❌ CustomerStats: query failed: %v", err)
		return nil, fmt.Errorf("failed to compute customer stats: %w", err)
	}
	return stats, nil
}

// ExportAll returns the full unfiltered customer list for the CSV export
func (r *CustomerPgRepository) ExportAll(ctx context.Context) ([]models.Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers ORDER BY id ASC", customerColumns)
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to export customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			log.Printf("❌ ExportCustomers: scan failed: %v", err)
			continue
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}
	return customers, nil
}
