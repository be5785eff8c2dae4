package service

import (
	"net/url"
	"strings"

	"blorkfield-site/utils"
)

// AssetResolver turns an image filename from the catalog into a URL the page can load
type AssetResolver interface {
	ResolveImage(name string) string
}

// PathResolver resolves filenames against a base URL or path.
// Rewrites maps a catalog filename to the file actually published,
// e.g. an optimized derivative. Absolute http(s) references pass through.
type PathResolver struct {
	BaseURL  string
	Rewrites map[string]string
}

// Ensure PathResolver implements AssetResolver
var _ AssetResolver = PathResolver{}

// NewPathResolver creates a resolver for baseURL; an empty base means "/assets/"
func NewPathResolver(baseURL string, rewrites map[string]string) PathResolver {
	if baseURL == "" {
		baseURL = "/assets/"
	}
	return PathResolver{BaseURL: baseURL, Rewrites: rewrites}
}

// ResolveImage returns the URL for name, or "" when name is empty
func (r PathResolver) ResolveImage(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	if utils.IsRemoteImage(name) {
		return name
	}

	cleaned := utils.CleanImageName(name)
	if rewritten, ok := r.Rewrites[cleaned]; ok {
		cleaned = rewritten
	}

	segments := strings.Split(cleaned, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	base := r.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.Join(segments, "/")
}
