package gotemplate

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-coda/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files     fs.FS
	extension string
}

// WithFS loads named templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack one.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// Engine implements template.TemplateRenderer on a pongo2 template set.
// Compiled templates are cached, named ones by path and inline ones by source,
// so every instance of a kind shares one parse.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string

	mu     sync.RWMutex
	named  map[string]*pongo2.Template
	inline map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// noFiles backs engines that only render inline sources.
var noFiles embed.FS

// New builds an Engine. Without WithFS only RenderString is useful.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var files fs.FS = noFiles
	if cfg.files != nil {
		files = cfg.files
	}

	return &Engine{
		set:       pongo2.NewSet("coda", pongo2.NewFSLoader(files)),
		extension: cfg.extension,
		named:     make(map[string]*pongo2.Template),
		inline:    make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the template stored under name.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.compile(e.named, path, func() (*pongo2.Template, error) {
		return e.set.FromFile(path)
	})
	if err != nil {
		return "", fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	out, err := execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	return out, nil
}

// RenderString executes inline template source.
func (e *Engine) RenderString(source string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.compile(e.inline, source, func() (*pongo2.Template, error) {
		return e.set.FromString(source)
	})
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	out, err := execute(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}
	return out, nil
}

func (e *Engine) compile(cache map[string]*pongo2.Template, key string, build func() (*pongo2.Template, error)) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := cache[key]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := cache[key]; ok {
		return tmpl, nil
	}
	tmpl, err := build()
	if err != nil {
		return nil, err
	}
	cache[key] = tmpl
	return tmpl, nil
}

func execute(tmpl *pongo2.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(toContext(data), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// toContext copies data into a pongo2 context. Named map types such as
// content.Model are flattened to map[string]any at every depth.
func toContext(data map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		ctx[key] = plain(value)
	}
	return ctx
}

func plain(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return value
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = plain(iter.Value().Interface())
	}
	return out
}
