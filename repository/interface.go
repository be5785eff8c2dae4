package repository

import (
	"context"

	"blorkfield-site/models"
)

// CatalogRepositoryInterface defines the contract for reading the product catalog
type CatalogRepositoryInterface interface {
	GetAll(ctx context.Context) []models.Product
	GetByID(ctx context.Context, id string) (*models.Product, error)
}
