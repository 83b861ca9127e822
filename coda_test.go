package coda

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestRenderHTML_FeatureCardDefaults(t *testing.T) {
	result, err := RenderHTML(context.Background(), "feature-card", Content{"iconName": "lock"}, []Decorator{Colored("purple")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(result.Output)
	for _, want := range []string{
		`class="coda-component coda-feature-card is-purple"`,
		`data-icon="lock"`,
		"Advanced Analytics",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
}

func TestRenderHTML_DevelopmentModeDiagnostics(t *testing.T) {
	result, err := RenderHTML(context.Background(), "feature-card", Content{"iconName": "rocket"}, nil, WithMode("development"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0].Field != "iconName" {
		t.Fatalf("expected one iconName issue, got %+v", result.Issues)
	}
}

func TestEmbeddedBundles(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedKinds(), "feature-card.yaml"); err != nil {
		t.Fatalf("expected feature card definition: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/component.tmpl"); err != nil {
		t.Fatalf("expected wrapper template: %v", err)
	}
}
