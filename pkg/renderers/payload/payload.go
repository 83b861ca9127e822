// Package payload renders component outputs as JSON documents for clients that
// hydrate components themselves.
package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/render"
)

// Name identifies the renderer inside the registry.
const Name = "json"

// Document is the encoded shape of a rendered component.
type Document struct {
	Kind        string            `json:"kind"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Content     content.Model     `json:"content"`
	Markup      string            `json:"markup"`
	Classes     []string          `json:"classes,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Styles      []component.Style `json:"styles,omitempty"`
	Stylesheets []string          `json:"stylesheets,omitempty"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

// Option customises the renderer.
type Option func(*Renderer)

// WithoutFingerprint omits the content fingerprint from documents.
func WithoutFingerprint() Option {
	return func(r *Renderer) {
		r.fingerprint = false
	}
}

// Renderer encodes component outputs as JSON.
type Renderer struct {
	fingerprint bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{fingerprint: true}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render encodes out. Markup is written without HTML escaping so clients can
// inject it verbatim.
func (r *Renderer) Render(ctx context.Context, out component.Output, options render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	doc, err := r.document(out, options)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if options.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("json renderer: encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Renderer) document(out component.Output, options render.RenderOptions) (Document, error) {
	doc := Document{
		Kind:        out.Kind,
		Content:     out.Content.Clone(),
		Markup:      out.Markup,
		Classes:     out.Classes,
		Attributes:  out.Attributes,
		Styles:      out.Styles,
		Stylesheets: out.Stylesheets,
		Diagnostics: options.Diagnostics,
	}
	if doc.Content == nil {
		doc.Content = content.Model{}
	}
	if r.fingerprint {
		sum, err := content.Fingerprint(doc.Content)
		if err != nil {
			return Document{}, fmt.Errorf("json renderer: fingerprint: %w", err)
		}
		doc.Fingerprint = sum.String()
	}
	return doc, nil
}
