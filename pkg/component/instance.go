package component

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-coda/pkg/constraint"
	"github.com/goliatone/go-coda/pkg/content"
	"github.com/goliatone/go-coda/pkg/render/template"
	"github.com/goliatone/go-coda/pkg/render/template/gotemplate"
	"github.com/goliatone/go-coda/pkg/validation"
)

// Option customises an Instance.
type Option func(*Instance)

// WithValidator sets the validator run on construction and on every Update.
// Instances default to the no-op production validator.
func WithValidator(v validation.Validator) Option {
	return func(i *Instance) {
		if v != nil {
			i.validator = v
		}
	}
}

// WithEngine sets the template engine used by Render.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(i *Instance) {
		if engine != nil {
			i.engine = engine
		}
	}
}

// Instance is the base Component implementation.
type Instance struct {
	mu          sync.RWMutex
	kind        Kind
	content     content.Model
	diagnostics []validation.Issue
	validator   validation.Validator
	engine      template.TemplateRenderer
}

var _ Component = (*Instance)(nil)

// New merges initial over the kind defaults and validates the result. The
// content is stored whatever the validator reports.
func New(kind Kind, initial content.Model, opts ...Option) *Instance {
	inst := &Instance{
		kind:      kind.Clone(),
		validator: validation.Noop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(inst)
	}
	inst.content = content.Merge(inst.kind.Defaults, initial)
	inst.diagnostics = inst.validator.Validate(inst.content, inst.kind.Constraints)
	return inst
}

// Kind returns the kind name.
func (i *Instance) Kind() string {
	return i.kind.Name
}

// Content returns a copy of the current content.
func (i *Instance) Content() content.Model {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.content.Clone()
}

// Constraints returns the kind's constraint set.
func (i *Instance) Constraints() constraint.Set {
	return i.kind.Constraints
}

// Update merges partial over the current content, stores the result, and
// returns the validation issues for the new content.
func (i *Instance) Update(partial content.Model) []validation.Issue {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.content = content.Merge(i.content, partial)
	i.diagnostics = i.validator.Validate(i.content, i.kind.Constraints)
	return slices.Clone(i.diagnostics)
}

// Diagnostics returns the issues reported for the current content.
func (i *Instance) Diagnostics() []validation.Issue {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.diagnostics)
}

// Render executes the kind template with the current content as context.
func (i *Instance) Render(ctx context.Context) (Output, error) {
	if ctx == nil {
		return Output{}, fmt.Errorf("component: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	model := i.Content()
	out := Output{
		Kind:        i.kind.Name,
		Content:     model,
		Attributes:  map[string]string{"data-component": i.kind.Name},
		Stylesheets: slices.Clone(i.kind.Stylesheets),
	}
	if i.kind.Template == "" {
		return out, nil
	}

	engine, err := i.templateEngine()
	if err != nil {
		return Output{}, err
	}
	markup, err := engine.RenderString(i.kind.Template, map[string]any(model.Clone()))
	if err != nil {
		return Output{}, fmt.Errorf("component: render %q: %w", i.kind.Name, err)
	}
	out.Markup = markup
	return out, nil
}

func (i *Instance) templateEngine() (template.TemplateRenderer, error) {
	if i.engine != nil {
		return i.engine, nil
	}
	return defaultEngine()
}

var (
	sharedEngineOnce sync.Once
	sharedEngine     *gotemplate.Engine
	sharedEngineErr  error
)

func defaultEngine() (template.TemplateRenderer, error) {
	sharedEngineOnce.Do(func() {
		sharedEngine, sharedEngineErr = gotemplate.New()
	})
	if sharedEngineErr != nil {
		return nil, fmt.Errorf("component: default engine: %w", sharedEngineErr)
	}
	return sharedEngine, nil
}
