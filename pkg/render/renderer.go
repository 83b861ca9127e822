package render

import (
	"context"

	"github.com/goliatone/go-coda/pkg/component"
)

// Renderer converts a rendered component Output into a byte representation
// (an HTML fragment, a JSON payload).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, out component.Output, options RenderOptions) ([]byte, error)
}

// RendererFunc adapts a function into a Renderer with a fixed name and
// content type.
func RendererFunc(name, contentType string, fn func(context.Context, component.Output, RenderOptions) ([]byte, error)) Renderer {
	return funcRenderer{name: name, contentType: contentType, fn: fn}
}

type funcRenderer struct {
	name        string
	contentType string
	fn          func(context.Context, component.Output, RenderOptions) ([]byte, error)
}

func (f funcRenderer) Name() string        { return f.name }
func (f funcRenderer) ContentType() string { return f.contentType }

func (f funcRenderer) Render(ctx context.Context, out component.Output, options RenderOptions) ([]byte, error) {
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(ctx, out, options)
}
