// Package constraint describes the declarative content rules attached to a
// component kind. A Set is built once per kind and shared by all instances of
// that kind; its shape (the constrained fields) never changes afterwards.
package constraint

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Canonical rule identifiers reported by validators.
const (
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleEnum      = "enum"
	RuleFormat    = "format"
)

// Format tags understood by the validator.
const (
	FormatURL       = "url"
	FormatEmail     = "email"
	FormatTokenRef  = "token-ref"
	FormatPlainText = "plain-text"
	FormatSafeSVG   = "safe-svg"
)

// Rule constrains a single content field. Nil bounds and empty enumerations
// are not enforced.
type Rule struct {
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Allows reports whether value is a member of the enumeration. Rules without
// an enumeration allow every value.
func (r Rule) Allows(value string) bool {
	if len(r.Enum) == 0 {
		return true
	}
	return slices.Contains(r.Enum, value)
}

func (r Rule) clone() Rule {
	out := Rule{Format: strings.TrimSpace(r.Format)}
	if r.MinLength != nil {
		out.MinLength = Int(*r.MinLength)
	}
	if r.MaxLength != nil {
		out.MaxLength = Int(*r.MaxLength)
	}
	if len(r.Enum) > 0 {
		out.Enum = slices.Clone(r.Enum)
	}
	return out
}

// Int returns a pointer to v, convenient for Rule literals.
func Int(v int) *int {
	return &v
}

// Set is an immutable mapping from field name to Rule.
type Set struct {
	rules map[string]Rule
}

// NewSet copies rules into a new Set. Blank field names are rejected.
func NewSet(rules map[string]Rule) (Set, error) {
	out := Set{rules: make(map[string]Rule, len(rules))}
	for name, rule := range rules {
		field := strings.TrimSpace(name)
		if field == "" {
			return Set{}, fmt.Errorf("constraint: field name is required")
		}
		if rule.MinLength != nil && rule.MaxLength != nil && *rule.MinLength > *rule.MaxLength {
			return Set{}, fmt.Errorf("constraint: field %q minLength %d exceeds maxLength %d", field, *rule.MinLength, *rule.MaxLength)
		}
		out.rules[field] = rule.clone()
	}
	return out, nil
}

// MustSet mirrors NewSet but panics on error. Useful for package-level kinds.
func MustSet(rules map[string]Rule) Set {
	set, err := NewSet(rules)
	if err != nil {
		panic(err)
	}
	return set
}

// Rule returns a copy of the rule registered for field.
func (s Set) Rule(field string) (Rule, bool) {
	rule, ok := s.rules[field]
	if !ok {
		return Rule{}, false
	}
	return rule.clone(), true
}

// Fields returns the constrained field names in sorted order.
func (s Set) Fields() []string {
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of constrained fields.
func (s Set) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the underlying mapping.
func (s Set) Rules() map[string]Rule {
	out := make(map[string]Rule, len(s.rules))
	for name, rule := range s.rules {
		out[name] = rule.clone()
	}
	return out
}

// WithBounds returns a new Set whose rules are replaced by overrides. The
// shape is preserved: overriding a field the set does not constrain is an
// error.
func (s Set) WithBounds(overrides map[string]Rule) (Set, error) {
	rules := s.Rules()
	for name, rule := range overrides {
		if _, ok := rules[name]; !ok {
			return Set{}, fmt.Errorf("constraint: field %q is not part of the set", name)
		}
		rules[name] = rule
	}
	return NewSet(rules)
}

// Equal reports whether both sets hold identical rules.
func (s Set) Equal(other Set) bool {
	if len(s.rules) != len(other.rules) {
		return false
	}
	for name, rule := range s.rules {
		candidate, ok := other.rules[name]
		if !ok || !rule.equal(candidate) {
			return false
		}
	}
	return true
}

func (r Rule) equal(other Rule) bool {
	return intPtrEqual(r.MinLength, other.MinLength) &&
		intPtrEqual(r.MaxLength, other.MaxLength) &&
		r.Format == other.Format &&
		slices.Equal(r.Enum, other.Enum)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
