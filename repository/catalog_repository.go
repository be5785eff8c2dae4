package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"blorkfield-site/models"
	"blorkfield-site/utils"
)

// ErrProductNotFound is returned by GetByID for unknown ids
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository is the immutable, ordered product catalog
type CatalogRepository struct {
	products []models.Product
	index    map[string]int
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// NewCatalogRepository validates products and takes a private copy of them.
// Insertion order is kept as display order.
func NewCatalogRepository(products []models.Product) (*CatalogRepository, error) {
	if err := utils.ValidateProducts(products); err != nil {
		return nil, err
	}

	owned := make([]models.Product, len(products))
	copy(owned, products)

	index := make(map[string]int, len(owned))
	for i, p := range owned {
		index[p.ID] = i
	}

	return &CatalogRepository{products: owned, index: index}, nil
}

// GetAll returns the catalog in display order. The slice is a copy.
func (r *CatalogRepository) GetAll(ctx context.Context) []models.Product {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// GetByID returns a copy of the product with the given id
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p := r.products[i]
	return &p, nil
}

// Len returns the number of products
func (r *CatalogRepository) Len() int {
	return len(r.products)
}

// LoadProductsFile reads a catalog file. YAML (.yaml, .yml) and JSON (.json)
// are accepted, either as a bare list or as {"products": [...]}.
func LoadProductsFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".json":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// decodeYAML rejects keys that do not map to a product field
func decodeYAML(data []byte) ([]models.Product, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return []models.Product{}, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if node.Content[0].Kind == yaml.SequenceNode {
		var products []models.Product
		if err := dec.Decode(&products); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
		return nonNil(products), nil
	}

	var list models.ProductList
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return nonNil(list.Products), nil
}

// decodeJSON rejects keys that do not map to a product field
func decodeJSON(data []byte) ([]models.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var products []models.Product
		if err := dec.Decode(&products); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
		return nonNil(products), nil
	}

	var list models.ProductList
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return nonNil(list.Products), nil
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
