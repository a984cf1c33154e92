package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"readora-admin/models"
	"readora-admin/repository"
	"readora-admin/service"
)

// CatalogController serves the public storefront page and its PDF export
type CatalogController struct {
	catalogService *service.CatalogService
	bookRepo       repository.BookRepositoryInterface
	topOverlay     []models.TopSellingEntry
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *service.CatalogService, bookRepo repository.BookRepositoryInterface, topOverlay []models.TopSellingEntry) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		bookRepo:       bookRepo,
		topOverlay:     topOverlay,
	}
}

// Storefront handles GET / and renders the public book listing
func (c *CatalogController) Storefront(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	log.Printf("📚 Storefront: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ Storefront: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	books := c.bookRepo.All()
	if len(books) == 0 {
		books = service.FallbackBooks()
	}
	cards := service.TopCards(books, c.topOverlay)

	html, err := c.catalogService.RenderStorefrontHTML(books, cards)
	if err != nil {
		log.Printf("❌ Storefront: Error rendering page: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render storefront: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Storefront: Rendered %d books and %d top cards", len(books), len(cards))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ Storefront: Error writing response: %v", err)
	}
}

// CatalogPDF handles GET /admin/catalog/pdf and serves the storefront page
// rendered as a PDF download.
func (c *CatalogController) CatalogPDF(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CatalogPDF: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ CatalogPDF: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()
	pdf, err := c.catalogService.GeneratePDF(ctx)
	if err != nil {
		log.Printf("❌ CatalogPDF: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ CatalogPDF: Generated PDF (%d bytes)", len(pdf))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="readora-catalog.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ CatalogPDF: Error writing PDF: %v", err)
	}
}
