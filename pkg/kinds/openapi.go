package kinds

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

const (
	templateExtensionKey    = "x-coda-template"
	stylesheetsExtensionKey = "x-coda-stylesheets"
)

// FromOpenAPI imports component kinds from the components.schemas section of
// an OpenAPI 3 document. Property minLength, maxLength, enum, and format
// become the constraint set; string defaults become the default content. The
// x-coda-template and x-coda-stylesheets extensions carry the template and
// stylesheets. When names is empty every schema is imported.
func FromOpenAPI(ctx context.Context, data []byte, names ...string) ([]component.Kind, error) {
	if ctx == nil {
		return nil, errors.New("kinds: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("kinds: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("kinds: load openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("kinds: openapi document has no component schemas")
	}

	selected := names
	if len(selected) == 0 {
		for name := range doc.Components.Schemas {
			selected = append(selected, name)
		}
		sort.Strings(selected)
	}

	out := make([]component.Kind, 0, len(selected))
	for _, name := range selected {
		ref, ok := doc.Components.Schemas[name]
		if !ok || ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("kinds: schema %q not found", name)
		}
		kind, err := kindFromSchema(name, ref.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, kind)
	}
	return out, nil
}

// LoadOpenAPI registers the imported kinds into a new catalog.
func LoadOpenAPI(ctx context.Context, data []byte, names ...string) (*Catalog, error) {
	imported, err := FromOpenAPI(ctx, data, names...)
	if err != nil {
		return nil, err
	}
	catalog := NewCatalog()
	for _, kind := range imported {
		if err := catalog.Register(kind); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func kindFromSchema(name string, schema *openapi3.Schema) (component.Kind, error) {
	rules := make(map[string]constraint.Rule, len(schema.Properties))
	defaults := make(content.Model)

	for field, propRef := range schema.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		prop := propRef.Value
		rule := constraint.Rule{Format: prop.Format}
		if prop.MinLength > 0 {
			rule.MinLength = constraint.Int(int(prop.MinLength))
		}
		if prop.MaxLength != nil {
			rule.MaxLength = constraint.Int(int(*prop.MaxLength))
		}
		for _, value := range prop.Enum {
			rule.Enum = append(rule.Enum, fmt.Sprint(value))
		}
		if rule.MinLength != nil || rule.MaxLength != nil || rule.Format != "" || len(rule.Enum) > 0 {
			rules[field] = rule
		}
		if value, ok := prop.Default.(string); ok {
			defaults[field] = value
		}
	}

	set, err := constraint.NewSet(rules)
	if err != nil {
		return component.Kind{}, fmt.Errorf("kinds: schema %q: %w", name, err)
	}

	kind := component.Kind{
		Name:        name,
		Description: strings.TrimSpace(schema.Description),
		Defaults:    defaults,
		Constraints: set,
	}
	if tmpl, ok := schema.Extensions[templateExtensionKey].(string); ok {
		kind.Template = strings.TrimSpace(tmpl)
	}
	if sheets, ok := schema.Extensions[stylesheetsExtensionKey].([]any); ok {
		for _, sheet := range sheets {
			if href, ok := sheet.(string); ok && href != "" {
				kind.Stylesheets = append(kind.Stylesheets, href)
			}
		}
	}
	return kind, nil
}
