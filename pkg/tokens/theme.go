package tokens

import (
	"errors"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// FromSelection layers the selected variant's tokens over the manifest tokens.
func FromSelection(sel *theme.Selection) *Store {
	if sel == nil || sel.Manifest == nil {
		return New(nil)
	}
	store := New(sel.Manifest.Tokens)
	if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
		store = store.Merge(New(variant.Tokens))
	}
	return store
}

// Select resolves name/variant through selector and returns the merged store
// with the selection it came from.
func Select(selector theme.ThemeSelector, name, variant string) (*Store, *theme.Selection, error) {
	if selector == nil {
		return nil, nil, errors.New("tokens: theme selector is required")
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, nil, fmt.Errorf("tokens: select theme %q/%q: %w", name, variant, err)
	}
	if sel == nil {
		return nil, nil, fmt.Errorf("tokens: theme %q/%q not found", name, variant)
	}
	return FromSelection(sel), sel, nil
}

// RendererConfig builds the renderer-facing theme configuration for sel:
// merged tokens, CSS variables derived from them, template partials with
// variant overrides layered over fallbacks, and an asset URL resolver.
func RendererConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil {
		return nil
	}
	store := FromSelection(sel)
	cfg := &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: copyStringMap(fallbacks),
		Tokens:   store.Values(),
		CSSVars:  store.CSSVars(),
	}
	if cfg.Partials == nil {
		cfg.Partials = make(map[string]string)
	}

	manifest := sel.Manifest
	if manifest == nil {
		return cfg
	}
	for key, value := range manifest.Templates {
		cfg.Partials[key] = value
	}
	prefix := manifest.Assets.Prefix
	files := copyStringMap(manifest.Assets.Files)
	if files == nil {
		files = make(map[string]string)
	}
	if variant, ok := manifest.Variants[sel.Variant]; ok {
		for key, value := range variant.Templates {
			cfg.Partials[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
