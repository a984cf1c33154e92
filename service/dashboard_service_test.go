package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"readora-admin/blackboard"
	"readora-admin/models"
	"readora-admin/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(t *testing.T, orders []models.Order) (*DashboardService, *repository.BookRepository) {
	t.Helper()
	store, err := blackboard.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(blackboard.KeyOrders, orders))

	bookRepo := repository.NewBookRepository()
	orderRepo := repository.NewOrderRepository(store)
	return NewDashboardService(bookRepo, orderRepo), bookRepo
}

func dashboardOrders(now time.Time) []models.Order {
	return []models.Order{
		{
			ID: "ord-1", Date: now.Add(-time.Hour).Format(time.RFC3339),
			CustomerName: "John Doe", CustomerEmail: "john@example.com",
			Total: "₹598", Status: "pending",
			Items: []models.OrderItem{{Title: "The Great Gatsby", Category: "Fiction", Quantity: 2}},
		},
		{
			ID: "ord-2", Date: now.AddDate(0, 0, -3).Format(time.RFC3339),
			CustomerName: "Priya Sharma", CustomerEmail: "priya@example.com",
			Total: "₹1,200", Status: "delivered",
			Items: []models.OrderItem{
				{Title: "The Hobbit", Category: "Fantasy", Quantity: 1},
				{Title: "1984", Category: "Fiction", Quantity: 1},
			},
		},
		{
			ID: "ord-3", Date: now.AddDate(0, 0, -10).Format(time.RFC3339),
			CustomerName: "John Doe", CustomerEmail: "john@example.com",
			Total: "₹300", Status: "confirmed",
			Items: []models.OrderItem{{Title: "Animal Farm", Quantity: 3}},
		},
	}
}

func TestDashboardStats(t *testing.T) {
	// Anchored mid-day so relative offsets stay within the same calendar day
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	svc, bookRepo := newDashboard(t, dashboardOrders(now))
	svc.now = func() time.Time { return now }
	bookRepo.Replace([]models.Book{{ID: 1, Title: "Only Book"}})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalBooks)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, int64(598+1200+300), stats.TotalRevenue)
	// John placed two orders, counted once by email
	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, 1, stats.OrdersToday)
	assert.Equal(t, int64(598), stats.RevenueToday)
	assert.Equal(t, 1, stats.PendingOrders)

	// Categories ranked by quantity, name breaking the Fiction/Unknown tie
	require.Len(t, stats.TopCategories, 3)
	assert.Equal(t, models.CategoryCount{Category: "Fiction", Count: 3}, stats.TopCategories[0])
	assert.Equal(t, models.CategoryCount{Category: "Unknown", Count: 3}, stats.TopCategories[1])
	assert.Equal(t, models.CategoryCount{Category: "Fantasy", Count: 1}, stats.TopCategories[2])
}

func TestDashboardStatsFallsBackToBuiltinCatalogCount(t *testing.T) {
	now := time.Now()
	svc, _ := newDashboard(t, dashboardOrders(now))
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, stats.TotalBooks)
}

func TestDashboardRecentSkipsInvalidOrders(t *testing.T) {
	now := time.Now()
	orders := dashboardOrders(now)
	orders = append(orders,
		models.Order{ID: "no-total", Date: now.Format(time.RFC3339), CustomerName: "X", Total: ""},
	)
	svc, _ := newDashboard(t, orders)

	recent, err := svc.Recent(context.Background())
	require.NoError(t, err)

	// Normalization backfills the empty total to ₹0, so the record stays
	require.Len(t, recent, 4)
	assert.Equal(t, "no-total", recent[0].ID)
	assert.Equal(t, "₹0", recent[0].Total)
	assert.Equal(t, "ord-1", recent[1].ID)
}

func TestDashboardRecentCapsAtFive(t *testing.T) {
	now := time.Now()
	orders := make([]models.Order, 0, 8)
	for i := 0; i < 8; i++ {
		orders = append(orders, models.Order{
			ID:           string(rune('a' + i)),
			Date:         now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			CustomerName: "C",
			Total:        "₹100",
		})
	}
	svc, _ := newDashboard(t, orders)

	recent, err := svc.Recent(context.Background())
	require.NoError(t, err)

	require.Len(t, recent, 5)
	assert.Equal(t, "a", recent[0].ID)
}

func TestDashboardReportContent(t *testing.T) {
	now := time.Now()
	svc, _ := newDashboard(t, dashboardOrders(now))
	svc.now = func() time.Time { return now }

	content, filename, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "readora-report-"+now.Format("2006-01-02")+".txt", filename)
	assert.True(t, strings.HasPrefix(content, "READORA ADMIN REPORT\n"))
	assert.Contains(t, content, "Total Orders Received: 3")
	assert.Contains(t, content, "Total Revenue: ₹2,098")
	// 2098 / 3 rounds to 699
	assert.Contains(t, content, "Average Order Value: ₹699")
	assert.Contains(t, content, "Fiction: 3 sales")
	assert.Contains(t, content, "Order #ord-1 - John Doe - ₹598 - pending")
	assert.True(t, strings.HasSuffix(content, "Report generated by Readora Admin System"))
}

func TestDashboardReportEmptyStore(t *testing.T) {
	// An empty store seeds the single sample order
	svc, _ := newDashboard(t, nil)

	content, _, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Contains(t, content, "Total Orders Received: 1")
	assert.Contains(t, content, "Total Revenue: ₹598")
}

func TestTopCategoriesBreaksTiesByName(t *testing.T) {
	counts := map[string]int{
		"Thriller": 2,
		"Fantasy":  5,
		"Romance":  2,
		"Fiction":  2,
	}

	ranked := topCategories(counts, 5)
	require.Len(t, ranked, 4)
	assert.Equal(t, models.CategoryCount{Category: "Fantasy", Count: 5}, ranked[0])
	assert.Equal(t, models.CategoryCount{Category: "Fiction", Count: 2}, ranked[1])
	assert.Equal(t, models.CategoryCount{Category: "Romance", Count: 2}, ranked[2])
	assert.Equal(t, models.CategoryCount{Category: "Thriller", Count: 2}, ranked[3])
}
