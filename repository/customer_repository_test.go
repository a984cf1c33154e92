package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"readora-admin/blackboard"
	"readora-admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerRepo(t *testing.T) *CustomerRepository {
	t.Helper()
	store, err := blackboard.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewCustomerRepository(store)
}

func seedCustomers(t *testing.T, repo *CustomerRepository, customers []models.Customer) {
	t.Helper()
	require.NoError(t, repo.saveAll(customers))
}

func TestCustomerCreateDefaults(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	before := time.Now().UnixMilli()
	customer, err := repo.Create(ctx, &models.SaveCustomerRequest{Name: "  John Smith ", Email: "john@example.com"})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, customer.ID, before)
	assert.Equal(t, "John Smith", customer.Name)
	assert.Equal(t, "active", customer.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), customer.JoinDate)
	assert.Zero(t, customer.TotalOrders)
	assert.Zero(t, customer.TotalSpent)
}

func TestCustomerListPagination(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	customers := make([]models.Customer, 0, 15)
	for i := 0; i < 15; i++ {
		customers = append(customers, models.Customer{
			ID:     int64(i + 1),
			Name:   fmt.Sprintf("Customer %02d", i),
			Email:  fmt.Sprintf("c%02d@example.com", i),
			Status: "active",
		})
	}
	seedCustomers(t, repo, customers)

	page1, err := repo.List(ctx, models.CustomerListParams{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page1.Customers, 12)
	assert.Equal(t, 15, page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 12, page1.PageSize)

	page2, err := repo.List(ctx, models.CustomerListParams{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Customers, 3)

	// Pages past the end are empty, not an error
	page3, err := repo.List(ctx, models.CustomerListParams{Page: 3})
	require.NoError(t, err)
	assert.Empty(t, page3.Customers)
}

func TestCustomerListSearchAndStatus(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	seedCustomers(t, repo, []models.Customer{
		{ID: 1, Name: "John Smith", Email: "john@example.com", Phone: "+91 98765", Status: "active"},
		{ID: 2, Name: "Priya Sharma", Email: "priya@example.com", Phone: "+91 12345", Status: "inactive"},
		{ID: 3, Name: "Arun Verma", Email: "arun.smith@example.com", Phone: "+91 55555", Status: "active"},
	})

	byName, err := repo.List(ctx, models.CustomerListParams{Search: "smith"})
	require.NoError(t, err)
	assert.Len(t, byName.Customers, 2) // name match and email match

	byPhone, err := repo.List(ctx, models.CustomerListParams{Search: "12345"})
	require.NoError(t, err)
	require.Len(t, byPhone.Customers, 1)
	assert.Equal(t, "Priya Sharma", byPhone.Customers[0].Name)

	active, err := repo.List(ctx, models.CustomerListParams{Status: "active"})
	require.NoError(t, err)
	assert.Len(t, active.Customers, 2)
}

func TestCustomerListSortByJoinDateNewestFirst(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	seedCustomers(t, repo, []models.Customer{
		{ID: 1, Name: "Old", JoinDate: "2024-01-15", Status: "active"},
		{ID: 2, Name: "New", JoinDate: "2026-05-01", Status: "active"},
		{ID: 3, Name: "Mid", JoinDate: "2025-03-10", Status: "active"},
	})

	resp, err := repo.List(ctx, models.CustomerListParams{SortBy: "joinDate"})
	require.NoError(t, err)
	require.Len(t, resp.Customers, 3)
	assert.Equal(t, "New", resp.Customers[0].Name)
	assert.Equal(t, "Old", resp.Customers[2].Name)
}

func TestCustomerDeleteRemovesExactlyOne(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	seedCustomers(t, repo, []models.Customer{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
	})

	require.NoError(t, repo.Delete(ctx, 2))

	resp, err := repo.List(ctx, models.CustomerListParams{})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)
}

func TestCustomerDeleteMissingIDIsErrorAndKeepsList(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	seedCustomers(t, repo, []models.Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})

	err := repo.Delete(ctx, 99)
	assert.ErrorContains(t, err, "not found")

	resp, err := repo.List(ctx, models.CustomerListParams{})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)
}

func TestCustomerUpdateMergesFields(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	seedCustomers(t, repo, []models.Customer{
		{ID: 1, Name: "A", Email: "a@example.com", JoinDate: "2025-01-01", TotalOrders: 4, TotalSpent: 1200},
	})

	updated, err := repo.Update(ctx, 1, &models.SaveCustomerRequest{
		Name: "A Renamed", Email: "a@example.com", Status: "inactive",
	})
	require.NoError(t, err)

	assert.Equal(t, "A Renamed", updated.Name)
	assert.Equal(t, "inactive", updated.Status)
	// Counters and join date survive edits
	assert.Equal(t, 4, updated.TotalOrders)
	assert.Equal(t, int64(1200), updated.TotalSpent)
	assert.Equal(t, "2025-01-01", updated.JoinDate)
}

func TestCustomerStats(t *testing.T) {
	repo := newCustomerRepo(t)
	ctx := context.Background()

	thisMonth := time.Now().Format("2006-01-02")
	seedCustomers(t, repo, []models.Customer{
		{ID: 1, Status: "active", JoinDate: "2024-02-10", TotalOrders: 3},
		{ID: 2, Status: "active", JoinDate: thisMonth, TotalOrders: 1},
		{ID: 3, Status: "inactive", JoinDate: "2024-06-01", TotalOrders: 0},
	})

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.New)
	assert.Equal(t, 1, stats.Repeat)
}
