// Package component implements the public per-component contract: content that
// is merged over kind defaults, validated against the kind's constraint set,
// and rendered through a template engine into a structured Output.
//
// Decorators wrap a Component to add presentation (classes, attributes, style
// blocks) without touching the wrapped instance. Decorated components pass
// Kind, Content, Constraints, Update, and Diagnostics straight through to the
// base; Render keeps the base markup and only appends.
package component
