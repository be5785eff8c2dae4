// Package templates holds the embedded HTML templates for cards and the listing page.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
