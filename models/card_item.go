package models

// CardItem is the minimal shape needed to render a card
type CardItem struct {
	ID             string `json:"id" yaml:"id" validate:"required"`
	Title          string `json:"title" yaml:"title" validate:"required"`
	BannerImage    string `json:"bannerImage,omitempty" yaml:"bannerImage,omitempty"`
	ThumbnailImage string `json:"thumbnailImage,omitempty" yaml:"thumbnailImage,omitempty"`
	Description    string `json:"description" yaml:"description" validate:"required"`
	Link           string `json:"link,omitempty" yaml:"link,omitempty" validate:"omitempty,weburl"`
}

// Carder is implemented by every record that can be shown as a card.
// CardItem implements it directly and Product through embedding.
type Carder interface {
	AsCard() CardItem
}

// AsCard returns the item itself
func (c CardItem) AsCard() CardItem {
	return c
}

// Image returns the image to show on the card: the banner when present,
// otherwise the thumbnail, otherwise an empty string.
func (c CardItem) Image() string {
	if c.BannerImage != "" {
		return c.BannerImage
	}
	return c.ThumbnailImage
}
