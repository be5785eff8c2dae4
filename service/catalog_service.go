package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"blorkfield-site/logger"
	"blorkfield-site/models"
	"blorkfield-site/repository"
	"blorkfield-site/templates"
)

// SiteInfo is the page-level metadata shown around the cards
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
}

// CatalogService composes the catalog into the listing page
type CatalogService struct {
	repository repository.CatalogRepositoryInterface
	renderer   *CardRenderer
	site       SiteInfo
	log        logger.Logger
	tmpl       *template.Template
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	repo repository.CatalogRepositoryInterface,
	renderer *CardRenderer,
	site SiteInfo,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		repository: repo,
		renderer:   renderer,
		site:       site,
		log:        log,
		tmpl:       template.Must(template.ParseFS(templates.FS, "catalog.html")),
	}
}

// RenderCards renders one card per product, in catalog order
func (s *CatalogService) RenderCards(ctx context.Context) ([]template.HTML, error) {
	products := s.repository.GetAll(ctx)
	cards := make([]template.HTML, 0, len(products))
	for _, p := range products {
		card, err := s.renderer.RenderCard(p)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// RenderCatalogHTML renders the full listing page
func (s *CatalogService) RenderCatalogHTML(ctx context.Context) (string, error) {
	cards, err := s.RenderCards(ctx)
	if err != nil {
		return "", err
	}

	data := models.CatalogData{
		Title:       s.site.Title,
		Description: s.site.Description,
		BaseURL:     s.site.BaseURL,
		Cards:       cards,
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "catalog", data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	s.log.Debug("Rendered catalog page", logger.Int("cards", len(cards)), logger.Int("bytes", buf.Len()))
	return buf.String(), nil
}

// RenderProductCard renders the card of a single product
func (s *CatalogService) RenderProductCard(ctx context.Context, id string) (template.HTML, error) {
	p, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderCard(p)
}

// ExportJSON writes the catalog in its data format: an ordered list of products
func (s *CatalogService) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := json.MarshalIndent(s.repository.GetAll(ctx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return append(data, '\n'), nil
}
