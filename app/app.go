package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"readora-admin/app/controller"
	"readora-admin/app/router"
	"readora-admin/blackboard"
	"readora-admin/db"
	"readora-admin/models"
	"readora-admin/repository"
	"readora-admin/service"
)

// Initialize initializes the application
func Initialize() error {
	blackboardDir := os.Getenv("BLACKBOARD_DIR")
	if blackboardDir == "" {
		blackboardDir = "data/blackboard"
	}
	store, err := blackboard.NewStore(blackboardDir)
	if err != nil {
		return fmt.Errorf("failed to initialize blackboard store: %w", err)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	catalogSource := os.Getenv("CATALOG_SOURCE")
	if catalogSource == "" {
		catalogSource = "data/database.json"
	}
	topSource := os.Getenv("TOP_SELLING_SOURCE")
	if topSource == "" {
		topSource = "data/top-selling.json"
	}

	// Pick repository implementations. Customers and orders can run on
	// Postgres; the catalog and cart always live in process.
	var customerRepo repository.CustomerRepositoryInterface
	var orderRepo repository.OrderRepositoryInterface
	if os.Getenv("STORE_DRIVER") == "postgres" {
		if err := db.InitDB(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		customerRepo = repository.NewCustomerPgRepository()
		orderRepo = repository.NewOrderPgRepository(store)
		log.Printf("📦 Using postgres store driver")
	} else {
		customerRepo = repository.NewCustomerRepository(store)
		orderRepo = repository.NewOrderRepository(store)
		log.Printf("📦 Using blackboard store driver at %s", blackboardDir)
	}

	bookRepo := repository.NewBookRepository()
	cartRepo := repository.NewCartRepository(store)

	// Load the catalog once at startup. Admin edits are not written back;
	// a restart reloads from the source.
	catalogService := service.NewCatalogService(catalogSource, topSource, baseURL)
	var topOverlay []models.TopSellingEntry
	books, topOverlay, err := catalogService.LoadCatalog(context.Background())
	if err != nil {
		log.Printf("⚠️ Could not load catalog from %s, using built-in fallback: %v", catalogSource, err)
		books = service.FallbackBooks()
	}
	bookRepo.Replace(books)
	log.Printf("📚 Catalog loaded: %d books", len(books))

	if err := service.EnsureCoverCacheDir(); err != nil {
		return err
	}
	coverService := service.NewCoverService(bookRepo, "data")
	dashboardService := service.NewDashboardService(bookRepo, orderRepo)

	controllers := &router.Controllers{
		Book:      controller.NewBookController(bookRepo, coverService, topOverlay),
		Customer:  controller.NewCustomerController(customerRepo),
		Order:     controller.NewOrderController(orderRepo),
		Dashboard: controller.NewDashboardController(dashboardService),
		Cart:      controller.NewCartController(cartRepo),
		Auth:      controller.NewAuthController(os.Getenv("ADMIN_ID"), os.Getenv("ADMIN_PASS")),
		Catalog:   controller.NewCatalogController(catalogService, bookRepo, topOverlay),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
