package models

// CategoryCount is one row of the top-categories ranking, ordered by
// total item quantity sold.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DashboardStats represents the dashboard counters.
// Example response:
// {
//   "totalBooks": 25,
//   "totalOrders": 3,
//   "totalRevenue": 1495,
//   "totalCustomers": 2,
//   "ordersToday": 1,
//   "revenueToday": 598,
//   "pendingOrders": 1,
//   "topCategories": [{"category": "Fiction", "count": 4}]
// }
type DashboardStats struct {
	TotalBooks     int             `json:"totalBooks"`
	TotalOrders    int             `json:"totalOrders"`
	TotalRevenue   int64           `json:"totalRevenue"`
	TotalCustomers int             `json:"totalCustomers"`
	OrdersToday    int             `json:"ordersToday"`
	RevenueToday   int64           `json:"revenueToday"`
	PendingOrders  int             `json:"pendingOrders"`
	TopCategories  []CategoryCount `json:"topCategories"`
}

// RecentOrder is one entry of the dashboard recent-orders feed
type RecentOrder struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Total    string `json:"total"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}
