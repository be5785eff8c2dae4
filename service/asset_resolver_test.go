package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blorkfield-site/service"
)

func TestPathResolver_ResolveImage(t *testing.T) {
	t.Parallel()

	r := service.NewPathResolver("", map[string]string{"overlay_core.png": "overlay_core.banner.jpg"})

	cases := map[string]string{
		"":                                 "",
		"   ":                              "",
		"asset_debugger.png":               "/assets/asset_debugger.png",
		"overlay_core.png":                 "/assets/overlay_core.banner.jpg",
		"./img/a b.png":                    "/assets/img/a%20b.png",
		"../secret.png":                    "/assets/secret.png",
		"https://cdn.blorkfield.com/x.png": "https://cdn.blorkfield.com/x.png",
	}
	for in, want := range cases {
		assert.Equal(t, want, r.ResolveImage(in), "input %q", in)
	}
}

func TestPathResolver_BaseWithoutSlash(t *testing.T) {
	t.Parallel()

	r := service.NewPathResolver("https://cdn.blorkfield.com/img", nil)
	assert.Equal(t, "https://cdn.blorkfield.com/img/overlay_core.png", r.ResolveImage("overlay_core.png"))
}
