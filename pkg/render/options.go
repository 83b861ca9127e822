package render

// RenderOptions describe per-request switches that renderers can honour
// without touching the component output.
type RenderOptions struct {
	// Stylesheets asks renderers to reference the kind's stylesheets (link
	// tags for HTML). Renderers that always include them may ignore it.
	Stylesheets bool
	// Indent pretty prints structured encodings such as JSON.
	Indent bool
	// Diagnostics are the validation messages for the rendered instance.
	// Renderers may surface them (data attributes, payload fields); they never
	// change the markup.
	Diagnostics []string
}
