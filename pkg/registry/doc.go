// Package registry associates caller-supplied identity keys with component
// instances inside an explicitly owned Scope.
//
// A Scope holds at most one instance per Key. The first Get for a key builds
// the instance from the supplied initial content; later calls return that
// same instance and ignore their initial content. Keys compare by identity
// (pointer), never by value, so two keys with the same label are distinct.
//
// The scope does not evict entries on its own. Its lifetime is its owner's:
// create one per request or per component tree, pass it explicitly (or via
// WithScope on a context), and Close it when the owner is done.
package registry
