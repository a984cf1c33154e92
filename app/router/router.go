package router

import (
	"net/http"

	"readora-admin/app/controller"
)

type Controllers struct {
	Book      *controller.BookController
	Customer  *controller.CustomerController
	Order     *controller.OrderController
	Dashboard *controller.DashboardController
	Cart      *controller.CartController
	Auth      *controller.AuthController
	Catalog   *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Public storefront
	http.HandleFunc("/", controllers.Catalog.Storefront)

	// Cart routes
	http.HandleFunc("/cart", controllers.Cart.Cart)
	http.HandleFunc("/cart/add", controllers.Cart.AddToCart)
	http.HandleFunc("/cart/buy-now", controllers.Cart.BuyNow)

	// Auth routes
	http.HandleFunc("/admin/login", controllers.Auth.Login)
	http.HandleFunc("/admin/logout", controllers.Auth.Logout)
	http.HandleFunc("/admin/session", controllers.Auth.Session)

	// Book routes (fixed paths must be registered before the /:id subtree)
	http.HandleFunc("/admin/books", controllers.Book.Books)
	http.HandleFunc("/admin/books/top", controllers.Book.TopSelling)
	http.HandleFunc("/admin/books/", controllers.Book.BookByID)

	// Customer routes
	http.HandleFunc("/admin/customers", controllers.Customer.Customers)
	http.HandleFunc("/admin/customers/stats", controllers.Customer.CustomerStats)
	http.HandleFunc("/admin/customers/export", controllers.Customer.ExportCustomers)
	http.HandleFunc("/admin/customers/", controllers.Customer.CustomerByID)

	// Order routes
	http.HandleFunc("/admin/orders", controllers.Order.Orders)
	http.HandleFunc("/admin/orders/bulk", controllers.Order.BulkAction)
	http.HandleFunc("/admin/orders/stats", controllers.Order.OrderStats)
	http.HandleFunc("/admin/orders/export", controllers.Order.ExportOrders)
	http.HandleFunc("/admin/orders/", controllers.Order.OrderByID)

	// Dashboard routes
	http.HandleFunc("/admin/dashboard/stats", controllers.Dashboard.Stats)
	http.HandleFunc("/admin/dashboard/recent", controllers.Dashboard.Recent)
	http.HandleFunc("/admin/dashboard/report", controllers.Dashboard.Report)

	// Catalog PDF export
	http.HandleFunc("/admin/catalog/pdf", controllers.Catalog.CatalogPDF)
}
