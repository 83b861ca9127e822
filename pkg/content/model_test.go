package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func featureDefaults() Model {
	return Model{
		"title":       "Advanced Analytics",
		"description": "Track usage trends across every workspace in real time.",
		"iconName":    "chart",
	}
}

func TestMerge_OverrideReplacesAndDefaultsBackfill(t *testing.T) {
	defaults := featureDefaults()
	override := Model{"title": "Security"}

	got := Merge(defaults, override)
	want := Model{
		"title":       "Security",
		"description": defaults["description"],
		"iconName":    "chart",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_NilOverrideKeepsDefault(t *testing.T) {
	got := Merge(featureDefaults(), Model{"iconName": nil})
	if value, _ := got.String("iconName"); value != "chart" {
		t.Fatalf("expected default icon to survive nil override, got %q", value)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	defaults := featureDefaults()
	override := Model{
		"title": "Globe",
		"meta":  map[string]any{"badge": "new"},
	}

	once := Merge(defaults, override)
	twice := Merge(once, override)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("merge not idempotent (-once +twice):\n%s", diff)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	defaults := Model{"meta": Model{"badge": "beta"}}
	override := Model{"title": "x"}

	merged := Merge(defaults, override)
	nested, _ := merged.Nested("meta")
	nested["badge"] = "mutated"

	original, _ := defaults.Nested("meta")
	if original["badge"] != "beta" {
		t.Fatalf("defaults mutated through merge result: %#v", original)
	}
	if _, ok := override["meta"]; ok {
		t.Fatalf("override mutated: %#v", override)
	}
}

func TestMerge_NestedReplacedWhole(t *testing.T) {
	defaults := Model{"cta": Model{"label": "Learn more", "href": "/docs"}}
	got := Merge(defaults, Model{"cta": Model{"label": "Start"}})

	nested, ok := got.Nested("cta")
	if !ok {
		t.Fatalf("expected nested cta model")
	}
	if _, exists := nested["href"]; exists {
		t.Fatalf("nested models should be replaced as a whole, got %#v", nested)
	}
}

func TestModel_FieldsSorted(t *testing.T) {
	got := featureDefaults().Fields()
	want := []string{"description", "iconName", "title"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFingerprint_StableAcrossIdempotentMerge(t *testing.T) {
	override := Model{"title": "Users"}
	once := Merge(featureDefaults(), override)
	twice := Merge(once, override)

	first, err := Fingerprint(once)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	second, err := Fingerprint(twice)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if !first.Equals(second) {
		t.Fatalf("fingerprints differ: %s vs %s", first, second)
	}

	changed, err := Fingerprint(Merge(once, Model{"title": "Lock"}))
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if changed.Equals(first) {
		t.Fatalf("expected fingerprint to change with content")
	}
}
