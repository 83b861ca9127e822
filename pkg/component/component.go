package component

import (
	"context"

	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/validation"
)

// Component is the contract consumed by renderers and decorators.
type Component interface {
	Kind() string
	Content() content.Model
	Constraints() constraint.Set
	Update(partial content.Model) []validation.Issue
	Diagnostics() []validation.Issue
	Render(ctx context.Context) (Output, error)
}

// Style is a named CSS block appended to an Output.
type Style struct {
	Name string `json:"name"`
	CSS  string `json:"css"`
}

// Output is the rendered form of a component. Markup and Content belong to the
// base instance; Classes, Attributes, and Styles are extension points for
// decorators.
type Output struct {
	Kind        string            `json:"kind"`
	Content     content.Model     `json:"content"`
	Markup      string            `json:"markup"`
	Classes     []string          `json:"classes,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Styles      []Style           `json:"styles,omitempty"`
	Stylesheets []string          `json:"stylesheets,omitempty"`
}

// HasClass reports whether class is present on the output.
func (o Output) HasClass(class string) bool {
	for _, candidate := range o.Classes {
		if candidate == class {
			return true
		}
	}
	return false
}

// Style returns the style block registered under name.
func (o Output) Style(name string) (Style, bool) {
	for _, style := range o.Styles {
		if style.Name == name {
			return style, true
		}
	}
	return Style{}, false
}
