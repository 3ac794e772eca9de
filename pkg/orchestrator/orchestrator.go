package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-schemaform/internal/jsonschema/loader"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/daisyui"
	"github.com/goliatone/go-schemaform/pkg/renderers/jsonmodel"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const defaultRendererName = "daisyui"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
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

// WithTransformer registers a Transformer that runs on every built model.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves Request.ThemeName and Request.ThemeVariant into
// the renderer theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider with the given
// defaults.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// Orchestrator coordinates the pipeline from schema document to rendered
// output. Missing collaborators fall back to the file loader and a registry
// holding the daisyui and json renderers, and themes resolve against the
// built-in DaisyUI manifest.
type Orchestrator struct {
	loader          schema.Loader
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
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

// Target identifies the schema a request works on.
type Target struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source schema.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *schema.Document

	// Component selects a schema under components.schemas of an OpenAPI
	// document. Empty means the document is a plain JSON Schema.
	Component string
}

// Request describes a form rendering.
type Request struct {
	Target

	// Prefill fills the controls with the schema defaults.
	Prefill bool

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// ThemeName and ThemeVariant pick the theme handed to the renderer when
	// RenderOptions.Theme is unset. Empty values select the selector defaults;
	// a variant the manifest does not declare selects the default variant.
	ThemeName    string
	ThemeVariant string

	FormOptions   form.Options
	RenderOptions render.RenderOptions
}

// Output is a rendered form and the content type of its renderer.
type Output struct {
	Body        []byte
	ContentType string
}

// Submission is the typed result of a posted form.
type Submission struct {
	Values schema.Values
	// Fallbacks lists numeric properties kept as their raw text.
	Fallbacks []string
	// Payload is the indented JSON form of Values.
	Payload []byte
}

// Object loads the target and parses it into a schema object. Nothing is
// cached; every call reads the source again.
func (o *Orchestrator) Object(ctx context.Context, target Target) (schema.Object, error) {
	if ctx == nil {
		return schema.Object{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Object{}, err
	}
	if err := o.initialiseErr; err != nil {
		return schema.Object{}, err
	}

	doc, err := o.resolveDocument(ctx, target)
	if err != nil {
		return schema.Object{}, err
	}

	if target.Component != "" {
		obj, err := openapi.Component(ctx, doc, target.Component)
		if err != nil {
			return schema.Object{}, fmt.Errorf("orchestrator: resolve component: %w", err)
		}
		return obj, nil
	}

	obj, err := schema.Parse(doc)
	if err != nil {
		return schema.Object{}, fmt.Errorf("orchestrator: parse schema: %w", err)
	}
	return obj, nil
}

// Defaults returns the default values declared by the target schema.
func (o *Orchestrator) Defaults(ctx context.Context, target Target) (schema.Values, error) {
	obj, err := o.Object(ctx, target)
	if err != nil {
		return nil, err
	}
	return schema.ExtractDefaults(obj)
}

// Generate executes the loader → schema → model → renderer sequence.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	obj, err := o.Object(ctx, req.Target)
	if err != nil {
		return Output{}, err
	}

	var values schema.Values
	if req.Prefill {
		values, err = schema.ExtractDefaults(obj)
		if err != nil {
			return Output{}, fmt.Errorf("orchestrator: extract defaults: %w", err)
		}
	}

	model := form.Build(obj, values, req.FormOptions)
	if err := o.applyTransformer(ctx, &model); err != nil {
		return Output{}, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	options := req.RenderOptions
	if options.Theme, err = o.resolveTheme(req); err != nil {
		return Output{}, err
	}

	body, err := renderer.Render(ctx, model, options)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Output{Body: body, ContentType: renderer.ContentType()}, nil
}

// Submit coerces posted form data against the target schema.
func (o *Orchestrator) Submit(ctx context.Context, target Target, raw schema.RawFormData) (Submission, error) {
	obj, err := o.Object(ctx, target)
	if err != nil {
		return Submission{}, err
	}

	values, fallbacks, err := schema.CoerceSubmissionReport(obj, raw)
	if err != nil {
		return Submission{}, fmt.Errorf("orchestrator: coerce submission: %w", err)
	}
	payload, err := values.MarshalIndent()
	if err != nil {
		return Submission{}, fmt.Errorf("orchestrator: encode submission: %w", err)
	}
	return Submission{Values: values, Fallbacks: fallbacks, Payload: payload}, nil
}

// Renderer resolves name against the registry; empty selects the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, target Target) (schema.Document, error) {
	if target.Document != nil {
		return *target.Document, nil
	}
	if target.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, target.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if req.RenderOptions.Theme != nil || o.themeSelector == nil {
		return req.RenderOptions.Theme, nil
	}

	variant := strings.ToLower(strings.TrimSpace(req.ThemeVariant))
	selection, err := o.themeSelector.Select(req.ThemeName, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	if variant != "" && !declaresVariant(selection.Manifest, variant) {
		selection, err = o.themeSelector.Select(req.ThemeName, "")
		if err != nil {
			return nil, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		if selection == nil {
			return nil, nil
		}
	}

	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}

// declaresVariant is true for manifests without variants, which accept any
// name.
func declaresVariant(manifest *theme.Manifest, variant string) bool {
	if manifest == nil || len(manifest.Variants) == 0 {
		return true
	}
	_, ok := manifest.Variants[variant]
	return ok
}

func (o *Orchestrator) applyTransformer(ctx context.Context, model *form.Model) error {
	if o.transformer == nil || model == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, model); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := daisyui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(jsonmodel.New())
	}
	if o.themeSelector == nil {
		provider, err := daisyui.NewRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
			return
		}
		o.themeSelector = daisyui.NewSelector(provider)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
