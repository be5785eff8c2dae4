package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blorkfield-site/utils"
)

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"overlay_core.png":   true,
		"ASSET_DEBUGGER.JPG": true,
		"a.jpeg":             true,
		"anim.gif":           true,
		"modern.webp":        true,
		"notes.txt":          false,
		"noext":              false,
	} {
		assert.Equal(t, want, utils.IsImageFile(name), name)
	}
}

func TestIsRemoteImage(t *testing.T) {
	t.Parallel()

	assert.True(t, utils.IsRemoteImage("https://cdn.blorkfield.com/a.png"))
	assert.True(t, utils.IsRemoteImage("HTTP://cdn.blorkfield.com/a.png"))
	assert.False(t, utils.IsRemoteImage("overlay_core.png"))
	assert.False(t, utils.IsRemoteImage("/assets/overlay_core.png"))
}

func TestCleanImageName(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"overlay_core.png":  "overlay_core.png",
		"./img/overlay.png": "img/overlay.png",
		"/img/overlay.png":  "img/overlay.png",
		"../../etc/passwd":  "etc/passwd",
		"  spaced.png ":     "spaced.png",
		"":                  "",
	} {
		assert.Equal(t, want, utils.CleanImageName(in), in)
	}
}

func TestVariantFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "overlay_core.thumb.jpg", utils.VariantFileName("overlay_core.png", "thumb"))
	assert.Equal(t, "img/a.banner.jpg", utils.VariantFileName("img/a.jpeg", "banner"))
	assert.Equal(t, "noext.thumb.jpg", utils.VariantFileName("noext", "thumb"))
}
