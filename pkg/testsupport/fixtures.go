package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

// FeatureCardTemplate is the markup template of the feature card fixture.
const FeatureCardTemplate = `<article class="feature-card"><i data-icon="{{ iconName }}"></i><h3>{{ title }}</h3><p>{{ description }}</p></article>`

// FeatureCardKind returns the feature card kind used across package tests:
// a title capped at 30 characters, a 20 to 120 character description, and an
// icon chosen from chart, lock, globe, and users.
func FeatureCardKind() component.Kind {
	return component.Kind{
		Name: "feature-card",
		Defaults: content.Model{
			"title":       "Advanced Analytics",
			"description": "Track usage trends across every workspace in real time.",
			"iconName":    "chart",
		},
		Constraints: constraint.MustSet(map[string]constraint.Rule{
			"title":       {MaxLength: constraint.Int(30)},
			"description": {MinLength: constraint.Int(20), MaxLength: constraint.Int(120)},
			"iconName":    {Enum: []string{"chart", "lock", "globe", "users"}},
		}),
		Template:    FeatureCardTemplate,
		Stylesheets: []string{"/css/components/feature-card.css"},
	}
}

// MustLoadContent loads a JSON fixture into a content model.
func MustLoadContent(t *testing.T, path string) content.Model {
	t.Helper()

	model, err := LoadContent(path)
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return model
}

// LoadContent reads a JSON fixture into a content model, returning an error
// for callers managing setup outside of *testing.T.
func LoadContent(path string) (content.Model, error) {
	if path == "" {
		return nil, errors.New("testsupport: content path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read content: %w", err)
	}
	var out content.Model
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal content: %w", err)
	}
	return out.Clone(), nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its content with the
// trailing newline editors like to add removed.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(bytes.TrimRight(MustReadGolden(t, path), "\n"))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureLogger returns a text logger writing every level into the returned
// buffer.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
