package registry

import (
	"sync"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/content"
)

// Factory builds a component from initial content.
type Factory interface {
	New(initial content.Model) component.Component
}

// FactoryFunc adapts a function into a Factory.
type FactoryFunc func(initial content.Model) component.Component

// New calls the underlying function.
func (fn FactoryFunc) New(initial content.Model) component.Component {
	return fn(initial)
}

// Scope owns the key → instance entries for one lifetime (a request, a
// component tree). It is safe for concurrent use.
type Scope struct {
	mu      sync.Mutex
	factory Factory
	entries map[*Key]component.Component
	closed  bool
}

// NewScope creates an empty scope that builds instances with factory.
func NewScope(factory Factory) *Scope {
	return &Scope{
		factory: factory,
		entries: make(map[*Key]component.Component),
	}
}

// Get returns the instance stored under key, building and storing it from
// initial on the first call. A nil key or a closed scope builds a fresh,
// unstored instance on every call. The factory runs under the scope lock so
// concurrent first lookups for the same key still yield one instance.
func (s *Scope) Get(key *Key, initial content.Model) component.Component {
	inst, _ := s.Acquire(key, initial)
	return inst
}

// Acquire behaves like Get and also reports whether the instance was built
// by this call rather than taken from the scope.
func (s *Scope) Acquire(key *Key, initial content.Model) (component.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != nil && !s.closed {
		if inst, ok := s.entries[key]; ok {
			return inst, false
		}
	}
	inst := s.build(initial)
	if key != nil && !s.closed && inst != nil {
		s.entries[key] = inst
	}
	return inst, inst != nil
}

// Lookup returns the stored instance without building one.
func (s *Scope) Lookup(key *Key) (component.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.entries[key]
	return inst, ok
}

// Len returns the number of stored entries.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Release drops the entry for key. It reports whether an entry existed.
func (s *Scope) Release(key *Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Close drops every entry and stops the scope from storing new ones.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[*Key]component.Component)
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Scope) build(initial content.Model) component.Component {
	if s.factory == nil {
		return nil
	}
	return s.factory.New(initial)
}
