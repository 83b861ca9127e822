package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded wrapper template so callers can copy it as
// a starting point for their own bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
