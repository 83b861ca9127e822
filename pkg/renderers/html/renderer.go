// Package html renders component outputs as HTML fragments: a wrapper element
// carrying the decorator classes and attributes, the instance markup, and the
// decorator style blocks.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/render"
	rendertemplate "github.com/goliatone/go-coda/pkg/render/template"
	gotemplate "github.com/goliatone/go-coda/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer inside the registry.
	Name = "html"

	templateName = "templates/component.tmpl"
	defaultTag   = "div"

	baseClass   = "coda-component"
	kindPrefix  = "coda-"
	issuesAttr  = "data-coda-issues"
	classAttr   = "class"
	contentType = "text/html; charset=utf-8"
)

var (
	attrNamePattern = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)
	tagPattern      = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	tag              string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/component.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy sanitises instance markup with policy before it is embedded.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// WithSanitizedMarkup sanitises instance markup with the bluemonday UGC
// policy extended with data attributes.
func WithSanitizedMarkup() Option {
	return func(cfg *config) {
		policy := bluemonday.UGCPolicy()
		policy.AllowDataAttributes()
		policy.AllowAttrs("class").Globally()
		cfg.policy = policy
	}
}

// WithTag changes the wrapper element (default div).
func WithTag(tag string) Option {
	return func(cfg *config) {
		trimmed := strings.ToLower(strings.TrimSpace(tag))
		if tagPattern.MatchString(trimmed) {
			cfg.tag = trimmed
		}
	}
}

// Renderer turns a component Output into an HTML fragment.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	tag       string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), tag: defaultTag}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		if _, err := fs.Stat(cfg.templateFS, templateName); err != nil {
			return nil, fmt.Errorf("html renderer: template %q: %w", templateName, err)
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{templates: templates, policy: cfg.policy, tag: cfg.tag}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return contentType
}

// Render wraps the instance markup. Classes are kind classes followed by the
// decorator classes; attributes are emitted in name order.
func (r *Renderer) Render(ctx context.Context, out component.Output, options render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	markup := out.Markup
	if r.policy != nil {
		markup = r.policy.Sanitize(markup)
	}

	data := map[string]any{
		"tag":        r.tag,
		"classes":    strings.Join(classList(out), " "),
		"attributes": attributeList(out.Attributes, options.Diagnostics),
		"markup":     markup,
		"styles":     styleList(out.Styles),
	}
	if options.Stylesheets {
		data["stylesheets"] = out.Stylesheets
	}

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(strings.TrimSpace(result)), nil
}

func classList(out component.Output) []string {
	classes := []string{baseClass}
	if out.Kind != "" {
		classes = append(classes, kindPrefix+out.Kind)
	}
	seen := make(map[string]struct{}, len(classes)+len(out.Classes))
	for _, class := range classes {
		seen[class] = struct{}{}
	}
	for _, class := range out.Classes {
		class = strings.TrimSpace(class)
		if class == "" {
			continue
		}
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		classes = append(classes, class)
	}
	return classes
}

func attributeList(attrs map[string]string, diagnostics []string) []map[string]string {
	names := make([]string, 0, len(attrs)+1)
	for name := range attrs {
		if name == classAttr || !attrNamePattern.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	values := attrs
	if len(diagnostics) > 0 {
		values = make(map[string]string, len(attrs)+1)
		for k, v := range attrs {
			values[k] = v
		}
		if _, exists := values[issuesAttr]; !exists {
			values[issuesAttr] = strconv.Itoa(len(diagnostics))
			names = append(names, issuesAttr)
		}
	}
	sort.Strings(names)

	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]string{"name": name, "value": values[name]})
	}
	return out
}

func styleList(styles []component.Style) []map[string]string {
	out := make([]map[string]string, 0, len(styles))
	for _, style := range styles {
		css := strings.TrimSpace(style.CSS)
		if css == "" {
			continue
		}
		out = append(out, map[string]string{
			"name": style.Name,
			// A literal closing tag would end the style element early.
			"css": strings.ReplaceAll(css, "</", `<\/`),
		})
	}
	return out
}
