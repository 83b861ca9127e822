package registry

import (
	"fmt"

	"github.com/google/uuid"
)

// Key is an opaque identity handle. Only the pointer identity matters for
// lookups; the label and id exist for logs and diagnostics.
type Key struct {
	id    uuid.UUID
	label string
}

// NewKey returns a fresh key.
func NewKey(label string) *Key {
	return &Key{id: uuid.New(), label: label}
}

// ID returns the key's diagnostic identifier.
func (k *Key) ID() uuid.UUID {
	if k == nil {
		return uuid.Nil
	}
	return k.id
}

// Label returns the label supplied at creation.
func (k *Key) Label() string {
	if k == nil {
		return ""
	}
	return k.label
}

// String implements fmt.Stringer.
func (k *Key) String() string {
	if k == nil {
		return "<nil>"
	}
	if k.label == "" {
		return k.id.String()
	}
	return fmt.Sprintf("%s(%s)", k.label, k.id)
}
