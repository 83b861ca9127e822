package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-coda/pkg/component"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/kinds"
	"github.com/goliatone/go-coda/pkg/registry"
	"github.com/goliatone/go-coda/pkg/render"
	rendertemplate "github.com/goliatone/go-coda/pkg/render/template"
	"github.com/goliatone/go-coda/pkg/renderers/html"
	"github.com/goliatone/go-coda/pkg/renderers/payload"
	"github.com/goliatone/go-coda/pkg/validation"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog replaces the embedded default catalog.
func WithCatalog(catalog *kinds.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithKindsFS loads additional kind definitions from fsys on top of the
// catalog.
func WithKindsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		if fsys != nil {
			o.kindsFS = append(o.kindsFS, fsys)
		}
	}
}

// WithMode selects the validator for the given mode. An explicit
// WithValidator wins over the mode.
func WithMode(mode validation.Mode) Option {
	return func(o *Orchestrator) {
		o.mode = mode
	}
}

// WithValidator injects a validator.
func WithValidator(v validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators applied to every rendered component
// before the request decorators.
func WithDecorators(decorators ...component.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger sets the logger that receives diagnostics and pipeline events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithEngine sets the template engine component instances render through.
func WithEngine(engine rendertemplate.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// Orchestrator renders catalog kinds through registry scopes, decorators, and
// output renderers.
type Orchestrator struct {
	catalog         *kinds.Catalog
	kindsFS         []fs.FS
	mode            validation.Mode
	validator       validation.Validator
	registry        *render.Registry
	defaultRenderer string
	decorators      []component.Decorator
	logger          *slog.Logger
	engine          rendertemplate.TemplateRenderer
	theme           themeConfig
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to the embedded catalog, the production validator,
// and the html and json renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		mode:            validation.ModeProduction,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single component render.
type Request struct {
	// Kind names the catalog kind. Optional when Scope is given; when both are
	// set the scope must build that kind.
	Kind string

	// Scope owns the instance. When nil the scope carried on the context is
	// used, and without one an unstored instance is built.
	Scope *registry.Scope

	// Key identifies the instance inside the scope. A nil key never stores.
	Key *registry.Key

	// Content seeds a newly built instance. Ignored when the scope already
	// holds an instance for Key.
	Content content.Model

	// Update is merged into the instance after lookup, stored or not.
	Update content.Model

	// Decorators wrap the instance for this request only.
	Decorators []component.Decorator

	// Renderer names the output renderer. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions are forwarded to the output renderer. Diagnostics default
	// to the instance's issue messages.
	RenderOptions render.RenderOptions

	ThemeName    string
	ThemeVariant string
}

// Result carries the rendered bytes and the instance diagnostics.
type Result struct {
	Output      []byte
	ContentType string
	Renderer    string
	Component   component.Component
	Issues      []validation.Issue
}

// Scope creates a registry scope that builds instances of the named kind.
func (o *Orchestrator) Scope(kind string) (*registry.Scope, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	def, err := o.catalog.Get(kind)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return registry.NewScope(o.factory(def)), nil
}

// NewComponent builds an unstored instance of the named kind.
func (o *Orchestrator) NewComponent(kind string, initial content.Model) (component.Component, error) {
	scope, err := o.Scope(kind)
	if err != nil {
		return nil, err
	}
	return scope.Get(nil, initial), nil
}

// Catalog exposes the configured kind catalog.
func (o *Orchestrator) Catalog() *kinds.Catalog {
	return o.catalog
}

// Render executes the scope lookup → decorate → render → output renderer
// sequence. Validation issues are returned on the result and never fail the
// call. They are logged when the instance is built or updated by this call.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	inst, built, err := o.resolveComponent(ctx, req)
	if err != nil {
		return Result{}, err
	}
	changed := built
	if len(req.Update) > 0 {
		inst.Update(req.Update)
		changed = true
	}
	issues := inst.Diagnostics()
	// Stored instances report once, when their content last changed.
	if changed {
		validation.Report(o.logger, inst.Kind(), issues)
	}

	decorators, err := o.decoratorsFor(req)
	if err != nil {
		return Result{}, err
	}
	decorated := component.Decorate(inst, decorators...)

	out, err := decorated.Render(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render component: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}
	options := req.RenderOptions
	if options.Diagnostics == nil && len(issues) > 0 {
		options.Diagnostics = validation.Messages(issues)
	}
	data, err := renderer.Render(ctx, out, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.Debug("component rendered",
		slog.String("kind", inst.Kind()),
		slog.String("renderer", renderer.Name()),
		slog.String("key", keyLabel(req.Key)),
		slog.Int("issues", len(issues)),
	)

	return Result{
		Output:      data,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
		Component:   decorated,
		Issues:      issues,
	}, nil
}

func (o *Orchestrator) resolveComponent(ctx context.Context, req Request) (component.Component, bool, error) {
	scope := req.Scope
	if scope == nil {
		if carried, ok := registry.FromContext(ctx); ok {
			scope = carried
		}
	}
	if scope == nil {
		if req.Kind == "" {
			return nil, false, errors.New("orchestrator: kind or scope is required")
		}
		created, err := o.Scope(req.Kind)
		if err != nil {
			return nil, false, err
		}
		scope = created
	}

	inst, built := scope.Acquire(req.Key, req.Content)
	if inst == nil {
		return nil, false, errors.New("orchestrator: scope factory returned no component")
	}
	if req.Kind != "" && inst.Kind() != req.Kind {
		return nil, false, fmt.Errorf("orchestrator: scope builds %q, request wants %q", inst.Kind(), req.Kind)
	}
	return inst, built, nil
}

func (o *Orchestrator) factory(kind component.Kind) registry.Factory {
	opts := []component.Option{component.WithValidator(o.validator)}
	if o.engine != nil {
		opts = append(opts, component.WithEngine(o.engine))
	}
	return registry.FactoryFunc(func(initial content.Model) component.Component {
		return component.New(kind, initial, opts...)
	})
}

func (o *Orchestrator) decoratorsFor(req Request) ([]component.Decorator, error) {
	decorators := make([]component.Decorator, 0, len(o.decorators)+len(req.Decorators)+1)
	decorators = append(decorators, o.decorators...)
	decorators = append(decorators, req.Decorators...)

	themed, err := o.themeDecorator(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, err
	}
	if themed != nil {
		decorators = append(decorators, themed)
	}
	return decorators, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.validator == nil {
		o.validator = validation.New(o.mode)
	}
	if o.catalog == nil {
		catalog, err := kinds.Defaults()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default catalog: %w", err)
			return
		}
		o.catalog = catalog
	}
	for _, fsys := range o.kindsFS {
		loaded, err := kinds.LoadFS(fsys)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load kinds: %w", err)
			return
		}
		if err := o.catalog.Merge(loaded); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: merge kinds: %w", err)
			return
		}
	}
	if o.registry == nil {
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry = render.NewRegistry(renderer, payload.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func keyLabel(key *registry.Key) string {
	if key == nil {
		return ""
	}
	return key.String()
}
