package service

import (
	"bytes"
	"fmt"
	"html/template"

	"blorkfield-site/models"
	"blorkfield-site/templates"
)

// CardRenderer maps a CardItem-shaped record to an HTML card.
// It holds no mutable state and is safe for concurrent use.
type CardRenderer struct {
	assets AssetResolver
	tmpl   *template.Template
}

// NewCardRenderer creates a CardRenderer that resolves images through assets
func NewCardRenderer(assets AssetResolver) *CardRenderer {
	return &CardRenderer{
		assets: assets,
		tmpl:   template.Must(template.ParseFS(templates.FS, "card.html")),
	}
}

// View builds the template model for an item.
// The banner is preferred over the thumbnail; with neither, ImageURL is empty.
func (r *CardRenderer) View(item models.Carder) models.CardView {
	card := item.AsCard()
	return models.CardView{
		ID:          card.ID,
		Title:       card.Title,
		Description: card.Description,
		Link:        card.Link,
		ImageURL:    r.assets.ResolveImage(card.Image()),
	}
}

// RenderCard renders one card. With a link the card is an anchor to it,
// otherwise it is a plain block with no anchor.
func (r *CardRenderer) RenderCard(item models.Carder) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "card", r.View(item)); err != nil {
		return "", fmt.Errorf("failed to render card %s: %w", item.AsCard().ID, err)
	}
	return template.HTML(buf.String()), nil
}
