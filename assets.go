package coda

import (
	"io/fs"

	"github.com/goliatone/go-coda/pkg/kinds"
	"github.com/goliatone/go-coda/pkg/renderers/html"
)

// EmbeddedKinds exposes the bundled kind definitions so callers can copy or
// extend them.
func EmbeddedKinds() fs.FS {
	return kinds.EmbeddedFS()
}

// EmbeddedTemplates exposes the html renderer's wrapper template bundle.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
