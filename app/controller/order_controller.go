package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"readora-admin/models"
	"readora-admin/repository"
	"readora-admin/utils"
)

// bulkActions maps the bulk toolbar actions onto target statuses
var bulkActions = map[string]string{
	"confirm": models.OrderStatusConfirmed,
	"ship":    models.OrderStatusShipped,
	"deliver": models.OrderStatusDelivered,
	"cancel":  models.OrderStatusCancelled,
}

// OrderController handles HTTP requests for orders
type OrderController struct {
	repository repository.OrderRepositoryInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface) *OrderController {
	return &OrderController{
		repository: repo,
	}
}

// Orders handles GET and POST /admin/orders
// Example response:
// {
//   "orders": [{"id": "ord-10001", "date": "2026-08-26T10:30:00Z", "customerName": "John Doe", "total": "₹598", "status": "confirmed", ...}],
//   "total": 1
// }
func (c *OrderController) Orders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Orders: Received %s request to %s", r.Method, r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		c.listOrders(w, r)
	case http.MethodPost:
		c.createOrder(w, r)
	default:
		log.Printf("❌ Orders: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *OrderController) listOrders(w http.ResponseWriter, r *http.Request) {
	params := models.OrderListParams{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}

	ctx := context.Background()
	orders, err := c.repository.List(ctx, params)
	if err != nil {
		log.Printf("❌ Orders: Error fetching orders: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch orders: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Orders: Successfully fetched %d orders", len(orders))

	response := models.OrderListResponse{
		Orders: orders,
		Total:  len(orders),
	}

	writeJSON(w, response, "Orders")
}

func (c *OrderController) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Orders: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		log.Printf("❌ Orders: items are required")
		http.Error(w, "items are required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" && strings.TrimSpace(req.CustomerEmail) == "" {
		log.Printf("❌ Orders: customer name or email is required")
		http.Error(w, "customer name or email is required", http.StatusBadRequest)
		return
	}

	var total float64
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		City:            req.City,
		Pincode:         req.Pincode,
		Items:           req.Items,
		Total:           utils.FormatINR(int64(math.Round(total))),
		Payment:         req.Payment,
	}

	ctx := context.Background()
	if err := c.repository.Create(ctx, order); err != nil {
		log.Printf("❌ Orders: Error creating order: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create order: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Orders: Successfully created order id=%s total=%s", order.ID, order.Total)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(order); err != nil {
		log.Printf("❌ Orders: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// OrderByID handles GET and DELETE /admin/orders/:id, plus
// PUT /admin/orders/:id/status
func (c *OrderController) OrderByID(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 OrderByID: Received %s request to %s", r.Method, r.URL.Path)

	// Path format: /admin/orders/{id} or /admin/orders/{id}/status
	path := strings.TrimPrefix(r.URL.Path, "/admin/orders/")
	if path == "" {
		http.Error(w, "order id parameter is required", http.StatusBadRequest)
		return
	}

	orderID := strings.TrimSuffix(path, "/status")
	if orderID != path {
		if strings.Contains(orderID, "/") {
			http.Error(w, "invalid path format", http.StatusBadRequest)
			return
		}
		c.updateStatus(w, r, orderID)
		return
	}
	if strings.Contains(orderID, "/") {
		http.Error(w, "invalid path format", http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	switch r.Method {
	case http.MethodGet:
		order, err := c.repository.GetByID(ctx, orderID)
		if err != nil {
			c.writeRepoError(w, "OrderByID", err)
			return
		}
		log.Printf("✅ OrderByID: Successfully fetched order id=%s", orderID)
		writeJSON(w, order, "OrderByID")

	case http.MethodDelete:
		if err := c.repository.Delete(ctx, orderID); err != nil {
			c.writeRepoError(w, "OrderByID", err)
			return
		}
		log.Printf("✅ OrderByID: Successfully deleted order id=%s", orderID)
		w.WriteHeader(http.StatusNoContent)

	default:
		log.Printf("❌ OrderByID: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *OrderController) updateStatus(w http.ResponseWriter, r *http.Request, orderID string) {
	if r.Method != http.MethodPut {
		log.Printf("❌ OrderByID: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ OrderByID: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Status) == "" {
		log.Printf("❌ OrderByID: status is required")
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	order, err := c.repository.UpdateStatus(ctx, orderID, req.Status, req.Note)
	if err != nil {
		c.writeRepoError(w, "OrderByID", err)
		return
	}

	log.Printf("✅ OrderByID: Successfully updated order id=%s to status=%s", orderID, order.Status)

	writeJSON(w, order, "OrderByID")
}

// BulkAction handles POST /admin/orders/bulk
// Example request: {"orderIds": ["ord-10001", "ord-10002"], "action": "ship"}
// Example response: {"updated": 2}
func (c *OrderController) BulkAction(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 BulkAction: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ BulkAction: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.BulkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ BulkAction: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if len(req.OrderIDs) == 0 {
		log.Printf("❌ BulkAction: orderIds are required")
		http.Error(w, "orderIds are required", http.StatusBadRequest)
		return
	}

	status, ok := bulkActions[req.Action]
	if !ok {
		log.Printf("❌ BulkAction: Unknown action: %s", req.Action)
		http.Error(w, "action must be one of confirm, ship, deliver, cancel", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	updated, err := c.repository.BulkUpdateStatus(ctx, req.OrderIDs, status)
	if err != nil {
		log.Printf("❌ BulkAction: Error updating orders: %v", err)
		http.Error(w, fmt.Sprintf("Failed to update orders: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ BulkAction: Successfully applied %s to %d orders", req.Action, updated)

	writeJSON(w, map[string]int{"updated": updated}, "BulkAction")
}

// OrderStats handles GET /admin/orders/stats
// Example response: {"pending": 2, "confirmed": 1, "shipped": 0, "delivered": 3}
func (c *OrderController) OrderStats(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 OrderStats: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ OrderStats: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	stats, err := c.repository.Stats(ctx)
	if err != nil {
		log.Printf("❌ OrderStats: Error computing stats: %v", err)
		http.Error(w, fmt.Sprintf("Failed to compute stats: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ OrderStats: pending=%d confirmed=%d shipped=%d delivered=%d", stats.Pending, stats.Confirmed, stats.Shipped, stats.Delivered)

	writeJSON(w, stats, "OrderStats")
}

// ExportOrders handles GET /admin/orders/export. The CSV covers the
// *filtered* order list, honoring the same search/status/date parameters as
// the listing.
func (c *OrderController) ExportOrders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportOrders: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ExportOrders: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := models.OrderListParams{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}

	ctx := context.Background()
	orders, err := c.repository.List(ctx, params)
	if err != nil {
		log.Printf("❌ ExportOrders: Error fetching orders: %v", err)
		http.Error(w, fmt.Sprintf("Failed to export orders: %v", err), http.StatusInternalServerError)
		return
	}

	headers := []string{"Order ID", "Date", "Customer Name", "Customer Email", "Items", "Total", "Status", "Payment Method"}
	rows := make([][]string, 0, len(orders))
	for _, order := range orders {
		items := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, fmt.Sprintf("%s (%dx)", item.Title, item.Quantity))
		}
		rows = append(rows, []string{
			order.ID,
			exportDate(order.Date),
			order.CustomerName,
			order.CustomerEmail,
			strings.Join(items, "; "),
			order.Total,
			order.Status,
			order.Payment,
		})
	}

	filename := fmt.Sprintf("orders-export-%s.csv", time.Now().Format("2006-01-02"))

	log.Printf("✅ ExportOrders: Exporting %d orders to %s", len(orders), filename)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write([]byte(utils.BuildCSV(headers, rows))); err != nil {
		log.Printf("❌ ExportOrders: Error writing CSV: %v", err)
	}
}

// exportDate renders an order date as day/month/year for the CSV, keeping
// the raw value when it does not parse.
func exportDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Local().Format("2/1/2006")
}

// writeRepoError maps repository errors onto HTTP statuses by message
func (c *OrderController) writeRepoError(w http.ResponseWriter, op string, err error) {
	log.Printf("❌ %s: Repository error: %v", op, err)
	if strings.Contains(err.Error(), "not found") {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("Request failed: %v", err), http.StatusInternalServerError)
}
