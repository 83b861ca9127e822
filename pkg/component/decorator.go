package component

import (
	"context"
	"maps"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-coda/pkg/tokens"
)

// Decorator wraps a Component to extend its rendered output.
type Decorator interface {
	Decorate(Component) Component
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(Component) Component

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(base Component) Component {
	return fn(base)
}

// Decorate applies decorators in order: the first wraps base directly and the
// last ends up outermost. Nil decorators are skipped.
func Decorate(base Component, decorators ...Decorator) Component {
	out := base
	for _, decorator := range decorators {
		if decorator == nil || out == nil {
			continue
		}
		out = decorator.Decorate(out)
	}
	return out
}

// Unwrapper is implemented by decorated components.
type Unwrapper interface {
	Unwrap() Component
}

// Base walks the decoration chain and returns the innermost component.
func Base(c Component) Component {
	for {
		wrapped, ok := c.(Unwrapper)
		if !ok {
			return c
		}
		inner := wrapped.Unwrap()
		if inner == nil {
			return c
		}
		c = inner
	}
}

// Decoration is the additive decorator variant: it appends classes and style
// blocks and sets attributes that are not already present on the output.
type Decoration struct {
	Name       string
	Classes    []string
	Attributes map[string]string
	Styles     []Style
}

// Decorate implements Decorator.
func (d Decoration) Decorate(base Component) Component {
	if base == nil {
		return nil
	}
	return &decorated{
		Component:  base,
		decoration: d.clone(),
	}
}

func (d Decoration) clone() Decoration {
	return Decoration{
		Name:       d.Name,
		Classes:    slices.Clone(d.Classes),
		Attributes: maps.Clone(d.Attributes),
		Styles:     slices.Clone(d.Styles),
	}
}

// Colored tags the component with a color modifier class and data attribute.
func Colored(color string) Decoration {
	trimmed := strings.ToLower(strings.TrimSpace(color))
	if trimmed == "" {
		return Decoration{Name: "color"}
	}
	return Decoration{
		Name:       "color",
		Classes:    []string{"is-" + trimmed},
		Attributes: map[string]string{"data-color": trimmed},
	}
}

// Styled appends a named CSS block.
func Styled(name, css string) Decoration {
	return Decoration{
		Name:   "style",
		Styles: []Style{{Name: name, CSS: css}},
	}
}

// Themed exposes the theme's CSS variables on :root and marks the component
// with the selected theme and variant.
func Themed(cfg *theme.RendererConfig) Decoration {
	if cfg == nil {
		return Decoration{Name: "theme"}
	}
	vars := maps.Clone(cfg.CSSVars)
	if len(vars) == 0 && len(cfg.Tokens) > 0 {
		vars = tokens.New(cfg.Tokens).CSSVars()
	}
	attrs := make(map[string]string, 2)
	if cfg.Theme != "" {
		attrs["data-theme"] = cfg.Theme
	}
	if cfg.Variant != "" {
		attrs["data-variant"] = cfg.Variant
	}
	d := Decoration{Name: "theme", Attributes: attrs}
	if block := tokens.StyleBlock(":root", vars); block != "" {
		d.Styles = []Style{{Name: "theme", CSS: block}}
	}
	return d
}

type decorated struct {
	Component
	decoration Decoration
}

// Unwrap returns the wrapped component.
func (d *decorated) Unwrap() Component {
	return d.Component
}

// Render renders the wrapped component and appends the decoration. Base
// markup and content are returned untouched. A decoration is dropped whole
// when an inner decoration already set one of its attributes, so the
// innermost Colored owns both the class and data-color.
func (d *decorated) Render(ctx context.Context) (Output, error) {
	out, err := d.Component.Render(ctx)
	if err != nil {
		return Output{}, err
	}
	if d.shadowed(out) {
		return out, nil
	}
	for _, class := range d.decoration.Classes {
		if class == "" || out.HasClass(class) {
			continue
		}
		out.Classes = append(out.Classes, class)
	}
	if len(d.decoration.Attributes) > 0 {
		if out.Attributes == nil {
			out.Attributes = make(map[string]string, len(d.decoration.Attributes))
		}
		for key, value := range d.decoration.Attributes {
			out.Attributes[key] = value
		}
	}
	for _, style := range d.decoration.Styles {
		if strings.TrimSpace(style.CSS) == "" {
			continue
		}
		out.Styles = append(out.Styles, style)
	}
	return out, nil
}

func (d *decorated) shadowed(out Output) bool {
	for key := range d.decoration.Attributes {
		if _, exists := out.Attributes[key]; exists {
			return true
		}
	}
	return false
}
