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
	"readora-admin/utils"
)

// CustomerController handles HTTP requests for customers
type CustomerController struct {
	repository repository.CustomerRepositoryInterface
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(repo repository.CustomerRepositoryInterface) *CustomerController {
	return &CustomerController{
		repository: repo,
	}
}

// Customers handles GET and POST /admin/customers
// Example response:
// {
//   "customers": [{"id": 1704067200000, "name": "John Smith", "email": "john.smith@email.com", "status": "active", ...}],
//   "total": 1,
//   "page": 1,
//   "pageSize": 12,
//   "totalPages": 1
// }
func (c *CustomerController) Customers(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Customers: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		c.listCustomers(w, r)
	case http.MethodPost:
		c.createCustomer(w, r)
	default:
		log.Printf("❌ Customers: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *CustomerController) listCustomers(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			log.Printf("❌ Customers: Invalid page: %s", pageStr)
			http.Error(w, "invalid page parameter", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	params := models.CustomerListParams{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		SortBy: r.URL.Query().Get("sort"),
		Page:   page,
	}

	ctx := context.Background()
	response, err := c.repository.List(ctx, params)
	if err != nil {
		log.Printf("❌ Customers: Error fetching customers: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch customers: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Customers: Successfully fetched page %d (%d customers)", response.Page, len(response.Customers))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Customers: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (c *CustomerController) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.SaveCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Customers: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		log.Printf("❌ Customers: name is required")
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		log.Printf("❌ Customers: email is required")
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	customer, err := c.repository.Create(ctx, &req)
	if err != nil {
		log.Printf("❌ Customers: Error creating customer: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create customer: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Customers: Successfully created customer id=%d name=%s", customer.ID, customer.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(customer); err != nil {
		log.Printf("❌ Customers: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// CustomerByID handles GET, PUT and DELETE /admin/customers/:id
func (c *CustomerController) CustomerByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CustomerByID: Received %s request to %s", r.Method, r.URL.Path)

	// Path format: /admin/customers/{id}
	path := strings.TrimPrefix(r.URL.Path, "/admin/customers/")
	if path == "" {
		http.Error(w, "customer id parameter is required", http.StatusBadRequest)
		return
	}
	if strings.Contains(path, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	customerID, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		log.Printf("❌ CustomerByID: Invalid customer id: %s", path)
		http.Error(w, "invalid customer id parameter", http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	switch r.Method {
	case http.MethodGet:
		customer, err := c.repository.GetByID(ctx, customerID)
		if err != nil {
			c.writeRepoError(w, "CustomerByID", err)
			return
		}
		log.Printf("✅ CustomerByID: Successfully fetched customer id=%d", customerID)
		writeJSON(w, customer, "CustomerByID")

	case http.MethodPut:
		var req models.SaveCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ CustomerByID: Failed to decode request body: %v", err)
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		customer, err := c.repository.Update(ctx, customerID, &req)
		if err != nil {
			c.writeRepoError(w, "CustomerByID", err)
			return
		}
		log.Printf("✅ CustomerByID: Successfully updated customer id=%d", customerID)
		writeJSON(w, customer, "CustomerByID")

	case http.MethodDelete:
		if err := c.repository.Delete(ctx, customerID); err != nil {
			c.writeRepoError(w, "CustomerByID", err)
			return
		}
		log.Printf("✅ CustomerByID: Successfully deleted customer id=%d", customerID)
		w.WriteHeader(http.StatusNoContent)

	default:
		log.Printf("❌ CustomerByID: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CustomerStats handles GET /admin/customers/stats
// Example response: {"total": 4, "active": 3, "new": 1, "repeat": 2}
func (c *CustomerController) CustomerStats(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CustomerStats: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ CustomerStats: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	stats, err := c.repository.Stats(ctx)
	if err != nil {
		log.Printf("❌ CustomerStats: Error computing stats: %v", err)
		http.Error(w, fmt.Sprintf("Failed to compute stats: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CustomerStats: total=%d active=%d new=%d repeat=%d", stats.Total, stats.Active, stats.New, stats.Repeat)

	writeJSON(w, stats, "CustomerStats")
}

// ExportCustomers handles GET /admin/customers/export. The CSV always covers
// the full customer list, ignoring any active filters.
func (c *CustomerController) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportCustomers: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ExportCustomers: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	customers, err := c.repository.ExportAll(ctx)
	if err != nil {
		log.Printf("❌ ExportCustomers: Error fetching customers: %v", err)
		http.Error(w, fmt.Sprintf("Failed to export customers: %v", err), http.StatusInternalServerError)
		return
	}

	headers := []string{"Name", "Email", "Phone", "Status", "Join Date", "Total Orders", "Total Spent", "Address", "Notes"}
	rows := make([][]string, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, []string{
			customer.Name,
			customer.Email,
			customer.Phone,
			customer.Status,
			customer.JoinDate,
			strconv.Itoa(customer.TotalOrders),
			strconv.FormatInt(customer.TotalSpent, 10),
			customer.Address,
			customer.Notes,
		})
	}

	log.Printf("✅ ExportCustomers: Exporting %d customers", len(customers))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="customers_export.csv"`)
	if _, err := w.Write([]byte(utils.BuildCSV(headers, rows))); err != nil {
		log.Printf("❌ ExportCustomers: Error writing CSV: %v", err)
	}
}

// writeRepoError maps repository errors onto HTTP statuses by message
func (c *CustomerController) writeRepoError(w http.ResponseWriter, op string, err error) {
	log.Printf("❌ %s: Repository error: %v", op, err)
	if strings.Contains(err.Error(), "not found") {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("Request failed: %v", err), http.StatusInternalServerError)
}

// writeJSON encodes v as the JSON response body
func writeJSON(w http.ResponseWriter, v any, op string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", op, err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
