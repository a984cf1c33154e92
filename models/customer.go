package models

// Customer represents a customer record as stored in the blackboard
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status"`
	JoinDate    string `json:"joinDate"` // YYYY-MM-DD
	TotalOrders int    `json:"totalOrders"`
	TotalSpent  int64  `json:"totalSpent"` // whole rupees
	Notes       string `json:"notes,omitempty"`
}

// SaveCustomerRequest represents the request body for creating or updating a customer.
// Example: {"name": "John Smith", "email": "john.smith@email.com", "phone": "+91 9876543210", "status": "active"}
type SaveCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CustomerListParams represents list filtering, sorting and paging parameters
type CustomerListParams struct {
	Search string
	Status string
	SortBy string // name | email | joinDate | orders
	Page   int
}

// CustomerListResponse represents one page of customers.
// Example response:
// {
//   "customers": [{"id": 1, "name": "John Smith", "email": "john.smith@email.com", "status": "active", ...}],
//   "total": 1,
//   "page": 1,
//   "pageSize": 12,
//   "totalPages": 1
// }
type CustomerListResponse struct {
	Customers  []Customer `json:"customers"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

// CustomerStats represents the counters above the customers screen
type CustomerStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	New    int `json:"new"`    // joined this calendar month
	Repeat int `json:"repeat"` // more than one order
}
