package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/validation"
)

// textAreaThreshold is the maximum length above which a field is edited in a
// multi-line prompt.
const textAreaThreshold = 80

// Fill asks for every string field of kind, in field order, and returns the
// answers as content. Enumerated fields become selects; the rest are text
// prompts prefilled with the kind defaults. Answers equal to the default are
// still returned so the result fully describes the instance.
func Fill(ctx context.Context, driver Driver, kind component.Kind) (content.Model, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}

	out := make(content.Model)
	for _, field := range fields(kind) {
		rule, _ := kind.Constraints.Rule(field)
		def, hasDefault := kind.Defaults.String(field)
		if !hasDefault && kind.Defaults.Has(field) {
			// Nested content keeps its default.
			continue
		}

		value, err := ask(ctx, driver, field, def, rule)
		if err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", field, err)
		}
		out[field] = value
	}
	return out, nil
}

// Review prints each issue through the driver.
func Review(ctx context.Context, driver Driver, issues []validation.Issue) error {
	for _, issue := range issues {
		if err := driver.Info(ctx, "warning: "+issue.String()); err != nil {
			return err
		}
	}
	return nil
}

func ask(ctx context.Context, driver Driver, field, def string, rule constraint.Rule) (string, error) {
	help := describe(rule)
	if len(rule.Enum) > 0 {
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      field,
			Options:      rule.Enum,
			DefaultIndex: indexOf(rule.Enum, def),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(rule.Enum) {
			return def, nil
		}
		return rule.Enum[idx], nil
	}

	if rule.MaxLength != nil && *rule.MaxLength > textAreaThreshold {
		return driver.TextArea(ctx, TextAreaConfig{Message: field, Default: def, Help: help})
	}
	return driver.Input(ctx, InputConfig{Message: field, Default: def, Help: help})
}

func fields(kind component.Kind) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range append(kind.Defaults.Fields(), kind.Constraints.Fields()...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func describe(rule constraint.Rule) string {
	var parts []string
	switch {
	case rule.MinLength != nil && rule.MaxLength != nil:
		parts = append(parts, fmt.Sprintf("%d to %d characters", *rule.MinLength, *rule.MaxLength))
	case rule.MaxLength != nil:
		parts = append(parts, fmt.Sprintf("at most %d characters", *rule.MaxLength))
	case rule.MinLength != nil:
		parts = append(parts, fmt.Sprintf("at least %d characters", *rule.MinLength))
	}
	if rule.Format != "" {
		parts = append(parts, "format "+rule.Format)
	}
	return strings.Join(parts, "; ")
}
