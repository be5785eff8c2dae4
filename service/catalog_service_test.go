package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blorkfield-site/logger"
	"blorkfield-site/models"
	"blorkfield-site/repository"
	"blorkfield-site/service"
)

func newCatalogService(t *testing.T, products []models.Product) *service.CatalogService {
	t.Helper()
	return service.NewCatalogService(
		newRepo(t, products),
		service.NewCardRenderer(service.NewPathResolver("/assets/", nil)),
		service.SiteInfo{Title: "Blorkfield", Description: "Software by Blorkfield", BaseURL: "https://blorkfield.com"},
		logger.NewNop(),
	)
}

func TestRenderCatalogHTML_CardsInCatalogOrder(t *testing.T) {
	t.Parallel()

	s := newCatalogService(t, repository.DefaultProducts())
	page, err := s.RenderCatalogHTML(context.Background())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Blorkfield", doc.Find("title").Text())
	assert.Equal(t, "Software by Blorkfield", doc.Find(".site-description").Text())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://blorkfield.com", canonical)

	var ids, titles []string
	doc.Find("main.catalog .card").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
		titles = append(titles, s.Find(".card-title").Text())
	})
	assert.Equal(t, []string{"product-overlay", "product-debugger"}, ids)
	assert.Equal(t, []string{"Overlay Core", "Asset Debugger"}, titles)

	src, _ := doc.Find("#product-overlay img").Attr("src")
	assert.Equal(t, "/assets/overlay_core.png", src)
	assert.Equal(t, 0, doc.Find(".catalog-empty").Length())
}

func TestRenderCatalogHTML_Empty(t *testing.T) {
	t.Parallel()

	s := newCatalogService(t, nil)
	page, err := s.RenderCatalogHTML(context.Background())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(".card").Length())
	assert.Equal(t, 1, doc.Find(".catalog-empty").Length())
}

func TestRenderProductCard(t *testing.T) {
	t.Parallel()

	s := newCatalogService(t, repository.DefaultProducts())

	card, err := s.RenderProductCard(context.Background(), "debugger")
	require.NoError(t, err)
	assert.Contains(t, string(card), "Asset Debugger")

	_, err = s.RenderProductCard(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	products := []models.Product{
		{
			CardItem:   models.CardItem{ID: "overlay", Title: "Overlay Core", Description: "desc", Link: "https://overlay.blorkfield.com"},
			NpmPackage: "https://www.npmjs.com/package/@blorkfield/overlay-core",
		},
		{CardItem: models.CardItem{ID: "debugger", Title: "Asset Debugger", Description: "desc"}},
	}
	data, err := newCatalogService(t, products).ExportJSON(context.Background())
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, map[string]any{
		"id":          "overlay",
		"title":       "Overlay Core",
		"description": "desc",
		"link":        "https://overlay.blorkfield.com",
		"npmPackage":  "https://www.npmjs.com/package/@blorkfield/overlay-core",
	}, raw[0])
	assert.Equal(t, "debugger", raw[1]["id"])
	assert.NotContains(t, raw[1], "link")

	var back []models.Product
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, products, back)
}
