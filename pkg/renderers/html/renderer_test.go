package html

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/render"
)

func featureCardOutput() component.Output {
	return component.Output{
		Kind:    "feature-card",
		Content: content.Model{"title": "Advanced Analytics"},
		Markup:  `<article class="feature-card"><h3>Advanced Analytics</h3></article>`,
		Classes: []string{"is-blue"},
		Attributes: map[string]string{
			"data-component": "feature-card",
			"data-color":     "blue",
		},
		Styles: []component.Style{
			{Name: "accent", CSS: ".feature-card{border-color:#1f6feb;}"},
		},
		Stylesheets: []string{"/css/components/feature-card.css"},
	}
}

func TestRenderer_Contract(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := renderer.Name(); got != "html" {
		t.Fatalf("unexpected renderer name: %s", got)
	}
	if got := renderer.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", got)
	}
}

func TestRenderer_WrapsMarkup(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	got, err := renderer.Render(context.Background(), featureCardOutput(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<div class="coda-component coda-feature-card is-blue" data-color="blue" data-component="feature-card">` +
		`<article class="feature-card"><h3>Advanced Analytics</h3></article></div>` +
		`<style data-coda-style="accent">.feature-card{border-color:#1f6feb;}</style>`
	if string(got) != want {
		t.Fatalf("unexpected output:\nwant %s\ngot  %s", want, got)
	}
}

func TestRenderer_StylesheetsAndDiagnostics(t *testing.T) {
	renderer, err := New(WithTag("section"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	got, err := renderer.Render(context.Background(), featureCardOutput(), render.RenderOptions{
		Stylesheets: true,
		Diagnostics: []string{"title: length 66 exceeds maximum 30"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(got)
	if !strings.HasPrefix(out, `<link rel="stylesheet" href="/css/components/feature-card.css"><section `) {
		t.Fatalf("expected stylesheet link before wrapper, got %s", out)
	}
	if !strings.Contains(out, `data-coda-issues="1"`) {
		t.Fatalf("expected diagnostics attribute, got %s", out)
	}
	if !strings.Contains(out, `</section>`) {
		t.Fatalf("expected custom wrapper tag, got %s", out)
	}
}

func TestRenderer_EscapesAttributesAndSkipsInvalidNames(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	output := component.Output{
		Kind: "badge",
		Attributes: map[string]string{
			"data-label":  `"quoted" <b>`,
			"bad name":    "x",
			"class":       "ignored",
			"onmouseover": "alert(1)",
		},
	}
	got, err := renderer.Render(context.Background(), output, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(got)
	if strings.Contains(out, "bad name") || strings.Contains(out, "ignored") {
		t.Fatalf("expected invalid attributes to be dropped, got %s", out)
	}
	if strings.Contains(out, `"quoted" <b>`) {
		t.Fatalf("expected attribute value to be escaped, got %s", out)
	}
}

func TestRenderer_SanitizedMarkup(t *testing.T) {
	renderer, err := New(WithSanitizedMarkup())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	output := component.Output{
		Kind:   "quote",
		Markup: `<p data-role="quote">Hi<script>alert(1)</script></p>`,
	}
	got, err := renderer.Render(context.Background(), output, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(got)
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script to be stripped, got %s", out)
	}
	if !strings.Contains(out, `<p data-role="quote">Hi</p>`) {
		t.Fatalf("expected safe markup to survive, got %s", out)
	}
}

func TestRenderer_StyleCannotCloseElement(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	output := component.Output{
		Kind:   "badge",
		Styles: []component.Style{{Name: "evil", CSS: "a{}</style><script>x</script>"}},
	}
	got, err := renderer.Render(context.Background(), output, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(string(got), "</style>") != 1 {
		t.Fatalf("expected a single closing style tag, got %s", got)
	}
}

func TestNew_CustomTemplatesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/component.tmpl": {Data: []byte(`<{{ tag }}>{{ markup|safe }}</{{ tag }}>`)},
	}
	renderer, err := New(WithTemplatesFS(fsys))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := renderer.Render(context.Background(), component.Output{Kind: "x", Markup: "<b>hi</b>"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(got) != "<div><b>hi</b></div>" {
		t.Fatalf("unexpected output %s", got)
	}

	if _, err := New(WithTemplatesFS(fstest.MapFS{})); err == nil {
		t.Fatalf("expected error for bundle without component template")
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, featureCardOutput(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
