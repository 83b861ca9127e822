package component

import (
	"slices"

	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
)

// Kind describes a component kind: its default content, the constraint set
// shared by all of its instances, and the template used to render it.
type Kind struct {
	Name        string
	Description string
	Defaults    content.Model
	Constraints constraint.Set
	Template    string
	Stylesheets []string
}

// New builds an Instance of the kind from initial merged over the defaults.
func (k Kind) New(initial content.Model, opts ...Option) *Instance {
	return New(k, initial, opts...)
}

// Clone returns a copy that shares no mutable state with k.
func (k Kind) Clone() Kind {
	out := k
	out.Defaults = k.Defaults.Clone()
	out.Stylesheets = slices.Clone(k.Stylesheets)
	return out
}
