package repository

import (
	"context"

	"readora-admin/models"
)

// BookRepositoryInterface defines the contract for the in-memory book catalog.
// Mutations are deliberately not persisted back to the JSON source; a restart
// reloads the catalog and discards admin edits.
type BookRepositoryInterface interface {
	Replace(books []models.Book)
	All() []models.Book
	List(params models.BookListParams) []models.Book
	GetByID(id int) (*models.Book, error)
	Create(req *models.SaveBookRequest) *models.Book
	Update(id int, req *models.SaveBookRequest) (*models.Book, error)
	Delete(id int) error
}

// CustomerRepositoryInterface defines the contract for customer persistence
type CustomerRepositoryInterface interface {
	List(ctx context.Context, params models.CustomerListParams) (*models.CustomerListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req *models.SaveCustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *models.SaveCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.CustomerStats, error)
	ExportAll(ctx context.Context) ([]models.Customer, error)
}

// OrderRepositoryInterface defines the contract for order persistence
type OrderRepositoryInterface interface {
	List(ctx context.Context, params models.OrderListParams) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status string, note string) (*models.Order, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status string) (int, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.OrderStats, error)
}

// CartRepositoryInterface defines the contract for the storefront cart
type CartRepositoryInterface interface {
	Get() []models.CartItem
	Add(req *models.AddToCartRequest) (merged bool, err error)
	ReplaceWith(req *models.AddToCartRequest) error
	Clear() error
}
