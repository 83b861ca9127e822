package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var referencePattern = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

// ErrUnknownToken is returned when a reference names a missing token.
var ErrUnknownToken = errors.New("tokens: unknown token")

// ErrCycle is returned when references form a loop.
var ErrCycle = errors.New("tokens: reference cycle")

// Store holds flattened token values keyed by dotted path.
type Store struct {
	values map[string]string
}

// New copies values into a Store.
func New(values map[string]string) *Store {
	store := &Store{values: make(map[string]string, len(values))}
	for key, value := range values {
		if path := normalizePath(key); path != "" {
			store.values[path] = value
		}
	}
	return store
}

// Load parses a JSON or YAML token document. Nested objects are flattened to
// dotted paths; objects carrying a "value" or "$value" scalar are treated as
// leaves so W3C-style token files load without preprocessing.
func Load(data []byte) (*Store, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return New(nil), nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return nil, fmt.Errorf("tokens: parse document: invalid JSON or YAML")
		}
	}
	values := make(map[string]string)
	if err := flatten("", raw, values); err != nil {
		return nil, err
	}
	return New(values), nil
}

// LoadFS reads and parses a token file from fsys.
func LoadFS(fsys fs.FS, path string) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("tokens: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("tokens: read %s: %w", path, err)
	}
	store, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("tokens: %s: %w", path, err)
	}
	return store, nil
}

// Lookup returns the raw value stored under path.
func (s *Store) Lookup(path string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[normalizePath(path)]
	return value, ok
}

// Keys returns the token paths in sorted order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of tokens.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns a copy of the raw token values.
func (s *Store) Values() map[string]string {
	out := make(map[string]string, s.Len())
	if s == nil {
		return out
	}
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Merge returns a new Store with other's tokens layered over s.
func (s *Store) Merge(other *Store) *Store {
	values := s.Values()
	if other != nil {
		for key, value := range other.values {
			values[key] = value
		}
	}
	return New(values)
}

// Resolve expands every {path} reference in value.
func (s *Store) Resolve(value string) (string, error) {
	return s.resolve(value, nil)
}

// ResolvePath looks up path and expands its references.
func (s *Store) ResolvePath(path string) (string, error) {
	raw, ok := s.Lookup(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownToken, path)
	}
	return s.resolve(raw, []string{normalizePath(path)})
}

func (s *Store) resolve(value string, stack []string) (string, error) {
	var resolveErr error
	out := referencePattern.ReplaceAllStringFunc(value, func(match string) string {
		if resolveErr != nil {
			return match
		}
		path := normalizePath(match[1 : len(match)-1])
		for _, seen := range stack {
			if seen == path {
				resolveErr = fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(stack, path), " -> "))
				return match
			}
		}
		raw, ok := s.Lookup(path)
		if !ok {
			resolveErr = fmt.Errorf("%w: %s", ErrUnknownToken, path)
			return match
		}
		resolved, err := s.resolve(raw, append(append([]string(nil), stack...), path))
		if err != nil {
			resolveErr = err
			return match
		}
		return resolved
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return out, nil
}

// CSSVars returns resolved tokens keyed by CSS custom property name. Tokens
// whose references cannot be resolved keep their raw value.
func (s *Store) CSSVars() map[string]string {
	out := make(map[string]string, s.Len())
	for _, key := range s.Keys() {
		value, err := s.ResolvePath(key)
		if err != nil {
			value = s.values[key]
		}
		out[CSSVarName(key)] = value
	}
	return out
}

// CSSVarName converts a token path into a CSS custom property name.
func CSSVarName(path string) string {
	trimmed := normalizePath(path)
	if trimmed == "" {
		return ""
	}
	return "--" + strings.NewReplacer(".", "-", "_", "-", " ", "-").Replace(trimmed)
}

// StyleBlock renders vars as a CSS rule for selector with properties in
// sorted order. Empty input produces an empty string.
func StyleBlock(selector string, vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString("{")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		path := joinPath(prefix, key)
		if path == "" {
			continue
		}
		switch v := value.(type) {
		case map[string]any:
			if leaf, ok := leafValue(v); ok {
				out[path] = leaf
				continue
			}
			if err := flatten(path, v, out); err != nil {
				return err
			}
		case nil:
			continue
		default:
			scalar, ok := scalarString(v)
			if !ok {
				return fmt.Errorf("tokens: %s holds unsupported value %T", path, value)
			}
			out[path] = scalar
		}
	}
	return nil
}

func leafValue(node map[string]any) (string, bool) {
	for _, key := range []string{"$value", "value"} {
		if raw, ok := node[key]; ok {
			if scalar, ok := scalarString(raw); ok {
				return scalar, true
			}
		}
	}
	return "", false
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func joinPath(parent, child string) string {
	parent = normalizePath(parent)
	child = normalizePath(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func normalizePath(path string) string {
	return strings.Trim(strings.TrimSpace(path), ".")
}
