package kinds

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-coda/pkg/component"
)

// Catalog stores component kinds by name.
type Catalog struct {
	mu    sync.RWMutex
	kinds map[string]component.Kind
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		kinds: make(map[string]component.Kind),
	}
}

// Register adds a kind by name. Duplicate names return an error.
func (c *Catalog) Register(kind component.Kind) error {
	name := strings.TrimSpace(kind.Name)
	if name == "" {
		return fmt.Errorf("kinds: kind name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.kinds[name]; exists {
		return fmt.Errorf("kinds: kind %q already registered", name)
	}
	kind.Name = name
	c.kinds[name] = kind.Clone()
	return nil
}

// MustRegister panics on registration failure.
func (c *Catalog) MustRegister(kind component.Kind) {
	if err := c.Register(kind); err != nil {
		panic(err)
	}
}

// Get retrieves a kind by name.
func (c *Catalog) Get(name string) (component.Kind, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	kind, ok := c.kinds[strings.TrimSpace(name)]
	if !ok {
		return component.Kind{}, fmt.Errorf("kinds: kind %q not found", name)
	}
	return kind.Clone(), nil
}

// List returns the sorted kind names.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a kind is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.kinds[strings.TrimSpace(name)]
	return ok
}

// Merge registers every kind of other into c. Names already present are an
// error.
func (c *Catalog) Merge(other *Catalog) error {
	if other == nil {
		return nil
	}
	for _, name := range other.List() {
		kind, err := other.Get(name)
		if err != nil {
			return err
		}
		if err := c.Register(kind); err != nil {
			return err
		}
	}
	return nil
}
