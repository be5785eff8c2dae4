package models

import "html/template"

// CatalogData represents the data structure passed to the catalog template
type CatalogData struct {
	Title       string
	Description string
	BaseURL     string
	Cards       []template.HTML
}

// CardView is what the card template sees for a single item
type CardView struct {
	ID          string
	Title       string
	Description string
	Link        string
	ImageURL    string
}
