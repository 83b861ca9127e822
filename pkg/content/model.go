package content

import (
	"reflect"
	"sort"
	"strings"
)

// Model maps field names to values. Supported values are strings (text and
// enum tags) and nested Models; map[string]any values decoded from JSON or
// YAML are normalised into Models by Clone and Merge.
type Model map[string]any

// Fields returns the field names in sorted order.
func (m Model) Fields() []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the field is present with a non-nil value.
func (m Model) Has(field string) bool {
	value, ok := m[field]
	return ok && value != nil
}

// String returns the field value when it is a string.
func (m Model) String(field string) (string, bool) {
	value, ok := m[field].(string)
	return value, ok
}

// Nested returns the field value when it is a nested model.
func (m Model) Nested(field string) (Model, bool) {
	switch value := m[field].(type) {
	case Model:
		return value, true
	case map[string]any:
		return Model(value), true
	default:
		return nil, false
	}
}

// Clone returns a deep copy of the model. Nested maps are copied and
// normalised to Model.
func (m Model) Clone() Model {
	if m == nil {
		return nil
	}
	out := make(Model, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}

// Equal reports whether two models hold the same fields and values.
func (m Model) Equal(other Model) bool {
	return reflect.DeepEqual(normalise(m), normalise(other))
}

// Merge produces a new model where every non-nil field of override replaces
// the default and every other field keeps the default value. Nested models are
// replaced as a whole. Merge never mutates its inputs.
func Merge(defaults, override Model) Model {
	out := make(Model, len(defaults)+len(override))
	for key, value := range defaults {
		out[key] = cloneValue(value)
	}
	for key, value := range override {
		if value == nil {
			continue
		}
		if strings.TrimSpace(key) == "" {
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Model:
		return v.Clone()
	case map[string]any:
		return Model(v).Clone()
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}

func normalise(m Model) Model {
	if m == nil {
		return Model{}
	}
	return m.Clone()
}
