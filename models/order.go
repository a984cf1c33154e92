package models

// Order represents an order as stored in the blackboard. Customer data is a
// denormalized snapshot, not a reference into the customer list.
type Order struct {
	ID              string      `json:"id"`
	Date            string      `json:"date"` // RFC 3339
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	City            string      `json:"city"`
	Pincode         string      `json:"pincode"`
	Items           []OrderItem `json:"items"`
	Total           string      `json:"total"` // formatted, e.g. "₹598"
	Status          string      `json:"status"`
	Payment         string      `json:"payment"`
	Notes           []OrderNote `json:"notes"`
}

// OrderItem is one line of an order
type OrderItem struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Cover    string  `json:"cover"`
	Category string  `json:"category,omitempty"`
	Quantity int     `json:"quantity"`
}

// OrderNote is a timestamped annotation appended on status updates
type OrderNote struct {
	Date string `json:"date"`
	Note string `json:"note"`
	Type string `json:"type"`
}

// Order statuses. Transitions are unconstrained: any status may follow any other.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderListParams represents list filtering parameters for orders
type OrderListParams struct {
	Search string
	Status string
	Date   string // "" | today | week | month
}

// CreateOrderRequest represents the storefront checkout payload.
// Example:
// {
//   "customerName": "John Doe",
//   "customerEmail": "john@example.com",
//   "customerPhone": "+91 9876543210",
//   "customerAddress": "123 Main Street",
//   "city": "Mumbai",
//   "pincode": "400001",
//   "payment": "cod",
//   "items": [{"title": "The Great Gatsby", "author": "F. Scott Fitzgerald", "price": 299, "quantity": 2}]
// }
type CreateOrderRequest struct {
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	City            string      `json:"city"`
	Pincode         string      `json:"pincode"`
	Payment         string      `json:"payment"`
	Items           []OrderItem `json:"items"`
}

// UpdateStatusRequest represents the status-update modal payload.
// An empty note skips the notes append.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// BulkActionRequest represents a bulk status transition over selected orders.
// Action is one of confirm | ship | deliver | cancel.
type BulkActionRequest struct {
	OrderIDs []string `json:"orderIds"`
	Action   string   `json:"action"`
}

// OrderListResponse represents the response for listing orders
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// OrderStats represents the per-status counters above the orders table
type OrderStats struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
}
