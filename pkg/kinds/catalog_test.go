package kinds

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

func TestCatalog_RegisterAndGet(t *testing.T) {
	catalog := NewCatalog()
	kind := component.Kind{
		Name:     " badge ",
		Defaults: content.Model{"label": "New"},
		Constraints: constraint.MustSet(map[string]constraint.Rule{
			"label": {MaxLength: constraint.Int(12)},
		}),
	}
	if err := catalog.Register(kind); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !catalog.Has("badge") {
		t.Fatalf("expected badge to be registered")
	}

	got, err := catalog.Get("badge")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "badge" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	got.Defaults["label"] = "mutated"

	again, _ := catalog.Get("badge")
	if label, _ := again.Defaults.String("label"); label != "New" {
		t.Fatalf("catalog defaults leaked through Get: %v", again.Defaults)
	}
}

func TestCatalog_RejectsDuplicatesAndBlankNames(t *testing.T) {
	catalog := NewCatalog()
	catalog.MustRegister(component.Kind{Name: "badge"})

	if err := catalog.Register(component.Kind{Name: "badge"}); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := catalog.Register(component.Kind{Name: "  "}); err == nil {
		t.Fatalf("expected blank name error")
	}
	if _, err := catalog.Get("missing"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestCatalog_ListSortedAndMerge(t *testing.T) {
	a := NewCatalog()
	a.MustRegister(component.Kind{Name: "zeta"})
	a.MustRegister(component.Kind{Name: "alpha"})

	b := NewCatalog()
	b.MustRegister(component.Kind{Name: "mid"})
	if err := b.Merge(a); err != nil {
		t.Fatalf("merge: %v", err)
	}

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, b.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if err := b.Merge(a); err == nil {
		t.Fatalf("expected merge conflict error")
	}
}
