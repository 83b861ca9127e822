package template

// TemplateRenderer is the seam component instances render through.
// RenderTemplate resolves a named template against the engine's loader;
// RenderString executes inline source such as a kind's Template field.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
	RenderString(source string, data map[string]any) (string, error)
}
