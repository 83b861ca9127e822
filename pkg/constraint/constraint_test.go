package constraint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func featureCardSet(t *testing.T) Set {
	t.Helper()
	set, err := NewSet(map[string]Rule{
		"title":       {MaxLength: Int(30)},
		"description": {MinLength: Int(20), MaxLength: Int(120)},
		"iconName":    {Enum: []string{"chart", "lock", "globe", "users"}},
	})
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func TestSet_FieldsSorted(t *testing.T) {
	got := featureCardSet(t).Fields()
	want := []string{"description", "iconName", "title"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_IsImmutable(t *testing.T) {
	enum := []string{"chart", "lock"}
	set := MustSet(map[string]Rule{"iconName": {Enum: enum}})
	enum[0] = "rocket"

	rule, _ := set.Rule("iconName")
	if rule.Enum[0] != "chart" {
		t.Fatalf("set aliased caller slice: %v", rule.Enum)
	}

	rule.Enum[1] = "mutated"
	again, _ := set.Rule("iconName")
	if again.Enum[1] != "lock" {
		t.Fatalf("rule accessor leaked internal slice: %v", again.Enum)
	}
}

func TestSet_WithBoundsKeepsShape(t *testing.T) {
	set := featureCardSet(t)

	tuned, err := set.WithBounds(map[string]Rule{"title": {MaxLength: Int(40)}})
	if err != nil {
		t.Fatalf("with bounds: %v", err)
	}
	if diff := cmp.Diff(set.Fields(), tuned.Fields()); diff != "" {
		t.Fatalf("shape changed (-want +got):\n%s", diff)
	}
	rule, _ := tuned.Rule("title")
	if rule.MaxLength == nil || *rule.MaxLength != 40 {
		t.Fatalf("expected tuned bound 40, got %+v", rule)
	}
	original, _ := set.Rule("title")
	if *original.MaxLength != 30 {
		t.Fatalf("original set mutated: %+v", original)
	}

	if _, err := set.WithBounds(map[string]Rule{"subtitle": {MaxLength: Int(10)}}); err == nil {
		t.Fatalf("expected error when adding a field through WithBounds")
	}
}

func TestNewSet_RejectsInvertedBounds(t *testing.T) {
	_, err := NewSet(map[string]Rule{"title": {MinLength: Int(10), MaxLength: Int(5)}})
	if err == nil {
		t.Fatalf("expected inverted bounds error")
	}
}

func TestRule_Allows(t *testing.T) {
	rule := Rule{Enum: []string{"chart", "lock"}}
	if !rule.Allows("lock") {
		t.Fatalf("expected lock allowed")
	}
	if rule.Allows("rocket") {
		t.Fatalf("expected rocket rejected")
	}
	if !(Rule{}).Allows("anything") {
		t.Fatalf("rules without enum allow every value")
	}
}
