package repository

import (
	"context"
	"testing"
	"time"

	"readora-admin/blackboard"
	"readora-admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRepo(t *testing.T) *OrderRepository {
	t.Helper()
	store, err := blackboard.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewOrderRepository(store)
}

func seedOrders(t *testing.T, repo *OrderRepository, orders []models.Order) {
	t.Helper()
	require.NoError(t, repo.saveAll(orders))
}

func TestOrderSeedsSampleWhenEmpty(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	orders, err := repo.List(ctx, models.OrderListParams{})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	sample := orders[0]
	assert.Equal(t, "10001", sample.ID)
	assert.Equal(t, "John Doe", sample.CustomerName)
	assert.Equal(t, models.OrderStatusConfirmed, sample.Status)
	assert.Equal(t, "₹598", sample.Total)
	require.Len(t, sample.Items, 1)
	assert.Equal(t, 2, sample.Items[0].Quantity)
}

func TestOrderNormalizationFillsDefaults(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	// A bare record, as a hand-edited store might contain
	seedOrders(t, repo, []models.Order{{ID: "x-1"}})

	order, err := repo.GetByID(ctx, "x-1")
	require.NoError(t, err)

	assert.Equal(t, "Unknown Customer", order.CustomerName)
	assert.Equal(t, "unknown@email.com", order.CustomerEmail)
	assert.Equal(t, "N/A", order.CustomerPhone)
	assert.Equal(t, "N/A", order.City)
	assert.Equal(t, "₹0", order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "cod", order.Payment)
	assert.NotEmpty(t, order.Date)
	assert.NotNil(t, order.Items)
	assert.NotNil(t, order.Notes)
}

func TestOrderNormalizationAssignsSequentialID(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	seedOrders(t, repo, []models.Order{{CustomerName: "No ID Yet"}})

	orders, err := repo.List(ctx, models.OrderListParams{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-10001", orders[0].ID)
}

func TestOrderNormalizationPersistsAssignedID(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	seedOrders(t, repo, []models.Order{{CustomerName: "No ID Yet"}})

	first, err := repo.List(ctx, models.OrderListParams{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "ord-10001", first[0].ID)

	// The assigned id is written back, so it stays stable across requests
	// and the counter does not advance again.
	second, err := repo.List(ctx, models.OrderListParams{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "ord-10001", second[0].ID)

	found, err := repo.GetByID(ctx, "ord-10001")
	require.NoError(t, err)
	assert.Equal(t, "No ID Yet", found.CustomerName)

	created := &models.Order{CustomerName: "Next In Line"}
	require.NoError(t, repo.Create(ctx, created))
	assert.Equal(t, "ord-10002", created.ID)
}

func TestOrderCreateAssignsIDAndPersists(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	order := &models.Order{
		CustomerName: "Priya Sharma",
		Items:        []models.OrderItem{{Title: "1984", Price: 279, Quantity: 1}},
		Total:        "₹279",
	}
	require.NoError(t, repo.Create(ctx, order))

	assert.Equal(t, "ord-10001", order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", fetched.CustomerName)
}

func TestOrderListFiltersAndSorts(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	seedOrders(t, repo, []models.Order{
		{ID: "a", Date: now.Add(-2 * time.Hour).Format(time.RFC3339), CustomerName: "John", Status: "pending", Total: "₹100"},
		{ID: "b", Date: now.AddDate(0, 0, -3).Format(time.RFC3339), CustomerName: "Priya", Status: "shipped", Total: "₹200"},
		{ID: "c", Date: now.AddDate(0, 0, -20).Format(time.RFC3339), CustomerName: "Arun", Status: "pending", Total: "₹300"},
	})

	all, err := repo.List(ctx, models.OrderListParams{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)

	today, err := repo.List(ctx, models.OrderListParams{Date: "today"})
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "a", today[0].ID)

	week, err := repo.List(ctx, models.OrderListParams{Date: "week"})
	require.NoError(t, err)
	assert.Len(t, week, 2)

	month, err := repo.List(ctx, models.OrderListParams{Date: "month"})
	require.NoError(t, err)
	assert.Len(t, month, 3)

	pending, err := repo.List(ctx, models.OrderListParams{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	search, err := repo.List(ctx, models.OrderListParams{Search: "priya"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "b", search[0].ID)
}

func TestOrderUpdateStatusAppendsNote(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	seedOrders(t, repo, []models.Order{{ID: "ord-1", Status: "pending"}})

	updated, err := repo.UpdateStatus(ctx, "ord-1", "shipped", "Handed to courier")
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "Handed to courier", updated.Notes[0].Note)
	assert.Equal(t, "status_update", updated.Notes[0].Type)

	// Empty note does not append
	updated, err = repo.UpdateStatus(ctx, "ord-1", "delivered", "")
	require.NoError(t, err)
	assert.Equal(t, "delivered", updated.Status)
	assert.Len(t, updated.Notes, 1)
}

func TestOrderUpdateStatusNotFound(t *testing.T) {
	repo := newOrderRepo(t)
	_, err := repo.UpdateStatus(context.Background(), "nope", "shipped", "")
	assert.ErrorContains(t, err, "not found")
}

func TestOrderBulkUpdateStatus(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	seedOrders(t, repo, []models.Order{
		{ID: "ord-1", Status: "pending"},
		{ID: "ord-2", Status: "pending"},
		{ID: "ord-3", Status: "pending"},
	})

	updated, err := repo.BulkUpdateStatus(ctx, []string{"ord-1", "ord-3", "missing"}, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Confirmed)
}

func TestOrderDelete(t *testing.T) {
	repo := newOrderRepo(t)
	ctx := context.Background()

	seedOrders(t, repo, []models.Order{{ID: "ord-1"}, {ID: "ord-2"}})

	require.NoError(t, repo.Delete(ctx, "ord-1"))

	orders, err := repo.List(ctx, models.OrderListParams{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	assert.ErrorContains(t, repo.Delete(ctx, "ord-1"), "not found")
}
