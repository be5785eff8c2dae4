package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blorkfield-site/models"
	"blorkfield-site/utils"
)

func validProduct(id string) models.Product {
	return models.Product{
		CardItem: models.CardItem{
			ID:          id,
			Title:       "Title " + id,
			Description: "Description " + id,
			Link:        "https://" + id + ".blorkfield.com",
		},
	}
}

func TestValidateProducts_Valid(t *testing.T) {
	t.Parallel()

	p := validProduct("overlay")
	p.Repository = "https://github.com/blorkfield/overlay-core"
	p.NpmPackage = "https://www.npmjs.com/package/@blorkfield/overlay-core"
	p.DockerImage = "ghcr.io/blorkfield/overlay:1.2.0"

	assert.NoError(t, utils.ValidateProducts([]models.Product{p, validProduct("debugger")}))
	assert.NoError(t, utils.ValidateProducts(nil))
}

func TestValidateProducts_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	missing := models.Product{}
	badURLs := validProduct("overlay")
	badURLs.Link = "/relative/path"
	badURLs.Repository = "github.com/blorkfield"
	badURLs.NpmPackage = "not a url"
	dup := validProduct("overlay")

	err := utils.ValidateProducts([]models.Product{missing, badURLs, dup})
	require.Error(t, err)

	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, utils.FieldErrors{
		"#0.id":              "is required",
		"#0.title":           "is required",
		"#0.description":     "is required",
		"overlay.link":       "must be an absolute URL",
		"overlay.repository": "must be an absolute URL",
		"overlay.npmPackage": "must be an absolute URL",
		"#2.id":              `duplicate id "overlay" (first used by #1)`,
	}, ve.Fields)
	assert.Contains(t, err.Error(), "invalid catalog: #0.description: is required")
}

func TestValidateProducts_DockerImageIsNotAURL(t *testing.T) {
	t.Parallel()

	p := validProduct("overlay")
	p.DockerImage = "blorkfield/overlay"
	assert.NoError(t, utils.ValidateProducts([]models.Product{p}))
}

func TestValidateProducts_LinkMustRenderVerbatim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		link  string
		valid bool
	}{
		{"https", "https://overlay.blorkfield.com", true},
		{"path query and fragment", "http://blorkfield.com/a/b?x=1&y=2#top", true},
		{"escaped space", "https://x.com/a%20b", true},
		{"javascript scheme", "javascript:alert(1)", false},
		{"opaque http", "http:foo", false},
		{"ftp scheme", "ftp://files.blorkfield.com", false},
		{"raw space", "https://x.com/a b", false},
		{"non ascii", "https://x.com/ü", false},
		{"quote", `https://x.com/"a"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct("overlay")
			p.Link = tt.link
			p.Repository = tt.link
			p.NpmPackage = tt.link

			err := utils.ValidateProducts([]models.Product{p})
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			var ve *utils.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, utils.FieldErrors{
				"overlay.link":       "must be an absolute URL",
				"overlay.repository": "must be an absolute URL",
				"overlay.npmPackage": "must be an absolute URL",
			}, ve.Fields)
		})
	}
}
