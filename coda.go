package coda

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/orchestrator"
	"github.com/goliatone/go-coda/pkg/registry"
	"github.com/goliatone/go-coda/pkg/render"
	"github.com/goliatone/go-coda/pkg/validation"
)

// Content aliases content.Model so callers can build content without an
// extra import.
type Content = content.Model

// Component is the per-component contract.
type Component = component.Component

// Decorator wraps a component and extends its rendered output.
type Decorator = component.Decorator

// Issue is a single validation diagnostic.
type Issue = validation.Issue

// RenderOptions describes per-request switches forwarded to output renderers.
type RenderOptions = render.RenderOptions

// Request and Result alias the orchestrator request/response pair.
type (
	Request = orchestrator.Request
	Result  = orchestrator.Result
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewKey creates a registry identity handle.
func NewKey(label string) *registry.Key {
	return registry.NewKey(label)
}

// RenderHTML builds an unstored instance of kind from initial content,
// applies decorators, and renders it with the html renderer. It is the
// simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, kind string, initial Content, decorators []Decorator, options ...orchestrator.Option) (Result, error) {
	orch := orchestrator.New(options...)
	return orch.Render(ctx, orchestrator.Request{
		Kind:       kind,
		Content:    initial,
		Decorators: decorators,
		Renderer:   "html",
	})
}

// Colored marks a component with a color class and data attribute.
func Colored(color string) Decorator {
	return component.Colored(color)
}

// Styled appends a named CSS block to a component.
func Styled(name, css string) Decorator {
	return component.Styled(name, css)
}

// WithMode forwards the validation mode to the orchestrator.
func WithMode(mode validation.Mode) orchestrator.Option {
	return orchestrator.WithMode(mode)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
