package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"readora-admin/service"
)

// DashboardController handles HTTP requests for the admin dashboard
type DashboardController struct {
	dashboardService *service.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Stats handles GET /admin/dashboard/stats
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
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DashboardStats: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ DashboardStats: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	stats, err := c.dashboardService.Stats(ctx)
	if err != nil {
		log.Printf("❌ DashboardStats: Error computing stats: %v", err)
		http.Error(w, fmt.Sprintf("Failed to compute stats: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ DashboardStats: books=%d orders=%d revenue=%d customers=%d", stats.TotalBooks, stats.TotalOrders, stats.TotalRevenue, stats.TotalCustomers)

	writeJSON(w, stats, "DashboardStats")
}

// Recent handles GET /admin/dashboard/recent
// Example response:
// [{"id": "ord-10001", "customer": "John Doe", "total": "₹598", "date": "2026-08-26T10:30:00Z", "status": "confirmed"}]
func (c *DashboardController) Recent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DashboardRecent: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ DashboardRecent: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	recent, err := c.dashboardService.Recent(ctx)
	if err != nil {
		log.Printf("❌ DashboardRecent: Error fetching recent orders: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch recent orders: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ DashboardRecent: Successfully fetched %d recent orders", len(recent))

	writeJSON(w, recent, "DashboardRecent")
}

// Report handles GET /admin/dashboard/report and serves the plain-text
// report as a download.
func (c *DashboardController) Report(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DashboardReport: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ DashboardReport: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	content, filename, err := c.dashboardService.Report(ctx)
	if err != nil {
		log.Printf("❌ DashboardReport: Error generating report: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate report: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ DashboardReport: Generated %s (%d bytes)", filename, len(content))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write([]byte(content)); err != nil {
		log.Printf("❌ DashboardReport: Error writing report: %v", err)
	}
}
