package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coda/pkg/component"
)

func textRenderer(name string) Renderer {
	return RendererFunc(name, "text/plain", func(_ context.Context, out component.Output, _ RenderOptions) ([]byte, error) {
		return []byte(out.Kind + ":" + out.Markup), nil
	})
}

func TestRegistry_RegisterGetList(t *testing.T) {
	reg := NewRegistry(textRenderer("text"))
	reg.MustRegister(textRenderer("alt"))

	if !reg.Has("text") || !reg.Has(" alt ") {
		t.Fatalf("expected both renderers to be registered")
	}
	if diff := cmp.Diff([]string{"alt", "text"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(textRenderer("text")); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := reg.Register(textRenderer(" ")); err == nil {
		t.Fatalf("expected unnamed renderer error")
	}
	if _, err := reg.Get("missing"); err == nil || !strings.Contains(err.Error(), `renderer "missing" not found`) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRegistry_Render(t *testing.T) {
	reg := NewRegistry(textRenderer("text"))

	data, contentType, err := reg.Render(context.Background(), "text", component.Output{Kind: "badge", Markup: "<b>x</b>"}, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(data) != "badge:<b>x</b>" || contentType != "text/plain" {
		t.Fatalf("unexpected result %q %q", data, contentType)
	}

	boom := errors.New("boom")
	reg.MustRegister(RendererFunc("broken", "text/plain", func(context.Context, component.Output, RenderOptions) ([]byte, error) {
		return nil, boom
	}))
	if _, _, err := reg.Render(context.Background(), "broken", component.Output{}, RenderOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
}

func TestNewRegistry_PanicsOnDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewRegistry(textRenderer("text"), textRenderer("text"))
}

func TestRegistry_LookupsTrimNames(t *testing.T) {
	reg := NewRegistry(textRenderer("alt"))

	if !reg.Has("  alt\t") {
		t.Fatalf("expected Has to match a padded name")
	}
	if _, err := reg.Get(" alt "); err != nil {
		t.Fatalf("expected Get to match a padded name: %v", err)
	}
}
