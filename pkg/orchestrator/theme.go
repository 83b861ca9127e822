package orchestrator

import (
	"fmt"
	"maps"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/tokens"
)

type themeConfig struct {
	selector       theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
	fallbacks      map[string]string
	store          *tokens.Store
}

// WithThemeSelector resolves theme/variant choices through selector and
// decorates every component with the selected tokens.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.theme.selector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request names
// neither.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.theme.defaultTheme = name
		o.theme.defaultVariant = variant
	}
}

// WithThemeFallbacks sets the partials merged under the selected theme's
// templates when building the renderer theme configuration.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.theme.fallbacks = maps.Clone(fallbacks)
	}
}

// WithTokens decorates every component with a static token store when no
// theme selector is configured.
func WithTokens(store *tokens.Store) Option {
	return func(o *Orchestrator) {
		o.theme.store = store
	}
}

// themeDecorator returns the outermost decorator for the request, or nil when
// no theme source is configured.
func (o *Orchestrator) themeDecorator(name, variant string) (component.Decorator, error) {
	cfg, err := o.themeRendererConfig(name, variant)
	if err != nil || cfg == nil {
		return nil, err
	}
	return component.Themed(cfg), nil
}

func (o *Orchestrator) themeRendererConfig(name, variant string) (*theme.RendererConfig, error) {
	if name == "" {
		name = o.theme.defaultTheme
	}
	if variant == "" {
		variant = o.theme.defaultVariant
	}

	if o.theme.selector != nil {
		_, sel, err := tokens.Select(o.theme.selector, name, variant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return tokens.RendererConfig(sel, o.theme.fallbacks), nil
	}

	if o.theme.store == nil || o.theme.store.Len() == 0 {
		return nil, nil
	}
	resolved, err := resolveAll(o.theme.store)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve tokens: %w", err)
	}
	return &theme.RendererConfig{
		Theme:    name,
		Variant:  variant,
		Partials: maps.Clone(o.theme.fallbacks),
		Tokens:   resolved.Values(),
		CSSVars:  resolved.CSSVars(),
	}, nil
}

func resolveAll(store *tokens.Store) (*tokens.Store, error) {
	values := make(map[string]string, store.Len())
	for _, key := range store.Keys() {
		value, err := store.ResolvePath(key)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return tokens.New(values), nil
}
