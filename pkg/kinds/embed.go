package kinds

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed defaults/*
var embeddedDefaults embed.FS

var (
	defaultsOnce    sync.Once
	defaultsCatalog *Catalog
	defaultsErr     error
)

// EmbeddedFS returns the bundled kind definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefaults, "defaults")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Defaults returns a fresh catalog holding the bundled kinds. Callers may
// register additional kinds on the returned catalog.
func Defaults() (*Catalog, error) {
	defaultsOnce.Do(func() {
		defaultsCatalog, defaultsErr = LoadFS(EmbeddedFS())
	})
	if defaultsErr != nil {
		return nil, defaultsErr
	}
	catalog := NewCatalog()
	if err := catalog.Merge(defaultsCatalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
