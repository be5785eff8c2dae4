package repository

import "blorkfield-site/models"

// DefaultProducts returns the built-in catalog in display order.
// A fresh slice is returned on every call.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			CardItem: models.CardItem{
				ID:          "overlay",
				Title:       "Overlay Core",
				BannerImage: "overlay_core.png",
				Description: "2d overlay created using TypeScript and Matter.js",
				Link:        "https://overlay.blorkfield.com",
			},
		},
		{
			CardItem: models.CardItem{
				ID:          "debugger",
				Title:       "Asset Debugger",
				BannerImage: "asset_debugger.png",
				Description: "3D asset debugger to preview assets as they will appear in ThreeJS scenes",
				Link:        "https://debugger.blorkfield.com",
			},
		},
	}
}
