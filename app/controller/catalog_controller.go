package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blorkfield-site/logger"
	"blorkfield-site/repository"
	"blorkfield-site/service"
)

// CatalogController handles HTTP requests for the catalog preview server
type CatalogController struct {
	repository     repository.CatalogRepositoryInterface
	catalogService *service.CatalogService
	log            logger.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	repo repository.CatalogRepositoryInterface,
	catalogService *service.CatalogService,
	log logger.Logger,
) *CatalogController {
	return &CatalogController{repository: repo, catalogService: catalogService, log: log}
}

// RenderCatalog handles GET /
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	page, err := c.catalogService.RenderCatalogHTML(r.Context())
	if err != nil {
		c.log.Error("Error rendering catalog", logger.Error(err))
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}
	respondHTML(w, c.log, page)
}

// ListProducts handles GET /api/products
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, c.log, http.StatusOK, c.repository.GetAll(r.Context()))
}

// GetProduct handles GET /api/products/{id}
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		c.notFoundOrError(w, id, err)
		return
	}
	respondJSON(w, c.log, http.StatusOK, product)
}

// GetProductCard handles GET /api/products/{id}/card and returns the card fragment
func (c *CatalogController) GetProductCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := c.catalogService.RenderProductCard(r.Context(), id)
	if err != nil {
		c.notFoundOrError(w, id, err)
		return
	}
	respondHTML(w, c.log, string(card))
}

func (c *CatalogController) notFoundOrError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, c.log, http.StatusNotFound, "Product not found")
		return
	}
	c.log.Error("Error serving product", logger.String("product_id", id), logger.Error(err))
	respondError(w, c.log, http.StatusInternalServerError, "Internal server error")
}
