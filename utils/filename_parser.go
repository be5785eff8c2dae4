package utils

import (
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsImageFile reports whether the filename has a known image extension (case-insensitive)
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsRemoteImage reports whether an image reference is already an absolute http(s) URL
func IsRemoteImage(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// CleanImageName removes dot segments and leading separators so a catalog
// reference like "./img/overlay_core.png" resolves to "img/overlay_core.png".
// It refuses to climb out of the asset directory.
func CleanImageName(name string) string {
	cleaned := filepath.ToSlash(filepath.Clean("/" + strings.TrimSpace(name)))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// VariantFileName returns the name of an optimized derivative.
// The optimizer always writes JPEG, so the extension is replaced.
// Example: VariantFileName("overlay_core.png", "thumb") = "overlay_core.thumb.jpg"
func VariantFileName(name, variant string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + "." + variant + ".jpg"
}
