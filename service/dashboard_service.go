package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"readora-admin/models"
	"readora-admin/repository"
	"readora-admin/utils"
)

// DashboardService aggregates catalog and order data into the admin
// dashboard counters, the recent-orders feed, and the downloadable report.
type DashboardService struct {
	bookRepo  repository.BookRepositoryInterface
	orderRepo repository.OrderRepositoryInterface
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(bookRepo repository.BookRepositoryInterface, orderRepo repository.OrderRepositoryInterface) *DashboardService {
	return &DashboardService{
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

// totalBooks counts the loaded catalog, falling back to the built-in list
// when nothing was loaded.
func (s *DashboardService) totalBooks() int {
	if n := len(s.bookRepo.All()); n > 0 {
		return n
	}
	return len(FallbackBooks())
}

// Stats computes the dashboard counters from all stored orders.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	orders, err := s.orderRepo.List(ctx, models.OrderListParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	stats := &models.DashboardStats{
		TotalBooks:    s.totalBooks(),
		TotalOrders:   len(orders),
		TopCategories: []models.CategoryCount{},
	}

	today := s.now().Format("2006-01-02")
	customers := make(map[string]bool)
	categories := make(map[string]int)

	for _, o := range orders {
		amount := utils.ParseINR(o.Total)
		stats.TotalRevenue += amount

		// A customer is counted once per email, falling back to name
		// when the email is empty.
		key := o.CustomerEmail
		if key == "" {
			key = o.CustomerName
		}
		if key != "" {
			customers[key] = true
		}

		if orderDay(o.Date) == today {
			stats.OrdersToday++
			stats.RevenueToday += amount
		}
		if strings.ToLower(o.Status) == models.OrderStatusPending {
			stats.PendingOrders++
		}

		for _, item := range o.Items {
			category := item.Category
			if category == "" {
				category = "Unknown"
			}
			categories[category] += item.Quantity
		}
	}

	stats.TotalCustomers = len(customers)
	stats.TopCategories = topCategories(categories, 5)
	return stats, nil
}

// orderDay extracts the calendar day of an order date, empty when the date
// does not parse.
func orderDay(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

// topCategories ranks categories by total quantity sold, descending. Ties
// break on the category name so the ranking is stable across calls, since the
// input is built from map iteration.
func topCategories(counts map[string]int, limit int) []models.CategoryCount {
	result := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, models.CategoryCount{Category: category, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Recent returns the five newest orders that have an id, a customer, and a
// total. Orders missing any of those are skipped.
func (s *DashboardService) Recent(ctx context.Context) ([]models.RecentOrder, error) {
	orders, err := s.orderRepo.List(ctx, models.OrderListParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	recent := make([]models.RecentOrder, 0, 5)
	for _, o := range orders {
		if o.ID == "" || (o.CustomerName == "" && o.CustomerEmail == "") || o.Total == "" {
			continue
		}
		customer := o.CustomerName
		if customer == "" {
			customer = o.CustomerEmail
		}
		status := strings.ToLower(o.Status)
		if status == "" {
			status = models.OrderStatusPending
		}
		recent = append(recent, models.RecentOrder{
			ID:       o.ID,
			Customer: customer,
			Total:    utils.FormatINR(utils.ParseINR(o.Total)),
			Date:     o.Date,
			Status:   status,
		})
		if len(recent) == 5 {
			break
		}
	}
	return recent, nil
}

// Report builds the plain-text admin report and its download filename.
func (s *DashboardService) Report(ctx context.Context) (content string, filename string, err error) {
	orders, err := s.orderRepo.List(ctx, models.OrderListParams{})
	if err != nil {
		return "", "", fmt.Errorf("failed to load orders: %w", err)
	}

	var totalRevenue int64
	for _, o := range orders {
		totalRevenue += utils.ParseINR(o.Total)
	}

	var avgOrder int64
	if len(orders) > 0 {
		avgOrder = int64(math.Round(float64(totalRevenue) / float64(len(orders))))
	}

	categories := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			category := item.Category
			if category == "" {
				category = "Unknown"
			}
			categories[category] += item.Quantity
		}
	}

	var b strings.Builder
	now := s.now()
	b.WriteString("READORA ADMIN REPORT\n")
	b.WriteString(fmt.Sprintf("Generated on: %s\n\n", now.Format("1/2/2006")))
	b.WriteString("OVERVIEW:\n---------\n")
	b.WriteString(fmt.Sprintf("Total Books in Catalog: %d\n", s.totalBooks()))
	b.WriteString(fmt.Sprintf("Total Orders Received: %d\n", len(orders)))
	b.WriteString(fmt.Sprintf("Total Revenue: %s\n", utils.FormatINR(totalRevenue)))
	b.WriteString(fmt.Sprintf("Average Order Value: %s\n\n", utils.FormatINR(avgOrder)))
	b.WriteString("TOP CATEGORIES:\n--------------\n")
	for _, cat := range topCategories(categories, 5) {
		b.WriteString(fmt.Sprintf("%s: %d sales\n", cat.Category, cat.Count))
	}
	b.WriteString("\nRECENT ORDERS:\n-------------\n")
	limit := len(orders)
	if limit > 10 {
		limit = 10
	}
	for _, o := range orders[:limit] {
		customer := o.CustomerName
		if customer == "" {
			customer = o.CustomerEmail
		}
		if customer == "" {
			customer = "Unknown"
		}
		status := o.Status
		if status == "" {
			status = "N/A"
		}
		b.WriteString(fmt.Sprintf("Order #%s - %s - %s - %s\n", o.ID, customer, utils.FormatINR(utils.ParseINR(o.Total)), status))
	}
	b.WriteString("\nReport generated by Readora Admin System")

	filename = fmt.Sprintf("readora-report-%s.txt", now.Format("2006-01-02"))
	return b.String(), filename, nil
}
