// Package template defines the template engine contract component kinds render
// through. The gotemplate subpackage provides the pongo2-backed engine.
package template
