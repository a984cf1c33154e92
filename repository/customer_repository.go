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
)

// CustomersPerPage is the fixed page size of the customers screen
const CustomersPerPage = 12

// CustomerRepository persists customers to the blackboard under the
// "readora_customers" key
type CustomerRepository struct {
	store *blackboard.Store
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(store *blackboard.Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

func (r *CustomerRepository) loadAll() []models.Customer {
	customers := []models.Customer{}
	r.store.Load(blackboard.KeyCustomers, &customers)
	return customers
}

func (r *CustomerRepository) saveAll(customers []models.Customer) error {
	return r.store.Save(blackboard.KeyCustomers, customers)
}

// List returns one page of customers matching the search term and status.
// Search matches name and email case-insensitively and phone as a raw
// substring; filters reset the caller to page 1 by convention.
func (r *CustomerRepository) List(ctx context.Context, params models.CustomerListParams) (*models.CustomerListResponse, error) {
	customers := r.loadAll()

	term := strings.ToLower(params.Search)
	filtered := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) ||
			strings.Contains(c.Phone, params.Search)
		matchesStatus := params.Status == "" || c.Status == params.Status
		if matchesSearch && matchesStatus {
			filtered = append(filtered, c)
		}
	}

	sortCustomers(filtered, params.SortBy)

	page := params.Page
	if page < 1 {
		page = 1
	}
	total := len(filtered)
	totalPages := (total + CustomersPerPage - 1) / CustomersPerPage

	start := (page - 1) * CustomersPerPage
	if start > total {
		start = total
	}
	end := start + CustomersPerPage
	if end > total {
		end = total
	}

	return &models.CustomerListResponse{
		Customers:  filtered[start:end],
		Total:      total,
		Page:       page,
		PageSize:   CustomersPerPage,
		TotalPages: totalPages,
	}, nil
}

func sortCustomers(customers []models.Customer, sortBy string) {
	sort.SliceStable(customers, func(i, j int) bool {
		a, b := customers[i], customers[j]
		switch sortBy {
		case "email":
			return compareFold(a.Email, b.Email)
		case "joinDate":
			// Newest members first
			return parseJoinDate(a.JoinDate).After(parseJoinDate(b.JoinDate))
		case "orders":
			return a.TotalOrders > b.TotalOrders
		default: // name
			return compareFold(a.Name, b.Name)
		}
	})
}

func parseJoinDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GetByID returns the customer with the given id
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	for _, c := range r.loadAll() {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, fmt.Errorf("customer with id %d not found", id)
}

// Create adds a new customer. The id is the current Unix-millisecond
// timestamp and the join date is today; order counters start at zero.
func (r *CustomerRepository) Create(ctx context.Context, req *models.SaveCustomerRequest) (*models.Customer, error) {
	customers := r.loadAll()

	now := time.Now()
	customer := models.Customer{
		ID:       now.UnixMilli(),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		Status:   req.Status,
		Address:  req.Address,
		Notes:    req.Notes,
		JoinDate: now.Format("2006-01-02"),
	}
	if customer.Status == "" {
		customer.Status = "active"
	}

	customers = append(customers, customer)
	if err := r.saveAll(customers); err != nil {
		log.Printf("❌ CreateCustomer: failed to persist: %v", err)
		return nil, err
	}

	log.Printf("✓ CreateCustomer: created customer id=%d name=%q", customer.ID, customer.Name)
	return &customer, nil
}

// Update merges the form fields into an existing customer
func (r *CustomerRepository) Update(ctx context.Context, id int64, req *models.SaveCustomerRequest) (*models.Customer, error) {
	customers := r.loadAll()

	for i := range customers {
		if customers[i].ID != id {
			continue
		}
		c := &customers[i]
		c.Name = strings.TrimSpace(req.Name)
		c.Email = strings.TrimSpace(req.Email)
		c.Phone = req.Phone
		c.Status = req.Status
		c.Address = req.Address
		c.Notes = req.Notes

		if err := r.saveAll(customers); err != nil {
			log.Printf("❌ UpdateCustomer: failed to persist: %v", err)
			return nil, err
		}
		log.Printf("✓ UpdateCustomer: updated customer id=%d", id)
		out := *c
		return &out, nil
	}

	return nil, fmt.Errorf("customer with id %d not found", id)
}

// Delete removes exactly one customer by numeric id. Deleting an id that is
// not present is an error and leaves the stored list untouched.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	customers := r.loadAll()

	kept := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(customers) {
		log.Printf("❌ DeleteCustomer: customer not found: id=%d", id)
		return fmt.Errorf("customer with id %d not found", id)
	}

	if err := r.saveAll(kept); err != nil {
		log.Printf("❌ DeleteCustomer: failed to persist: %v", err)
		return err
	}

	log.Printf("✓ DeleteCustomer: deleted customer id=%d (%d -> %d)", id, len(customers), len(kept))
	return nil
}

// Stats returns the counters shown above the customers screen
func (r *CustomerRepository) Stats(ctx context.Context) (*models.CustomerStats, error) {
	customers := r.loadAll()
	now := time.Now()

	stats := &models.CustomerStats{Total: len(customers)}
	for _, c := range customers {
		if c.Status == "active" {
			stats.Active++
		}
		if join := parseJoinDate(c.JoinDate); join.Month() == now.Month() && join.Year() == now.Year() {
			stats.New++
		}
		if c.TotalOrders > 1 {
			stats.Repeat++
		}
	}
	return stats, nil
}

// ExportAll returns the full unfiltered customer list for the CSV export
func (r *CustomerRepository) ExportAll(ctx context.Context) ([]models.Customer, error) {
	return r.loadAll(), nil
}
