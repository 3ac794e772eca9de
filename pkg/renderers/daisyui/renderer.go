package daisyui

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
	rendertemplate "github.com/goliatone/go-schemaform/pkg/render/template"
	"github.com/goliatone/go-schemaform/pkg/render/template/gotemplate"
)

const (
	DefaultAction = "/submit"
	DefaultTitle  = "JSON Schema to UI Demo"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	manifest         *theme.Manifest
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
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

// WithManifest replaces the built-in DaisyUI theme manifest.
func WithManifest(manifest *theme.Manifest) Option {
	return func(cfg *config) {
		if manifest != nil {
			cfg.manifest = manifest
		}
	}
}

// WithTitle sets the page heading and document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// Renderer produces DaisyUI styled HTML with htmx submission wiring.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	manifest  *theme.Manifest
	selector  theme.ThemeSelector
	title     string
}

var (
	_ render.Renderer       = (*Renderer)(nil)
	_ render.ResultRenderer = (*Renderer)(nil)
)

// New constructs the DaisyUI renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{title: DefaultTitle}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.manifest == nil {
		cfg.manifest = Manifest()
	}

	registry, err := NewRegistry(cfg.manifest)
	if err != nil {
		return nil, fmt.Errorf("daisyui renderer: %w", err)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("daisyui renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		manifest:  cfg.manifest,
		selector:  NewSelector(registry),
		title:     cfg.title,
	}, nil
}

func (r *Renderer) Name() string {
	return "daisyui"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme resolves a variant of the renderer's manifest. Unknown or empty
// variants fall back to DefaultVariant; nil means the manifest could not be
// selected.
func (r *Renderer) Theme(variant string) *theme.RendererConfig {
	variant = strings.ToLower(strings.TrimSpace(variant))
	if _, ok := r.manifest.Variants[variant]; !ok {
		variant = ""
	}
	selection, err := r.selector.Select(r.manifest.Name, variant)
	if err != nil {
		return nil
	}
	cfg := selection.RendererTheme(nil)
	return &cfg
}

// Render writes the full page, or only the form when options.Fragment is set.
// Descriptions are sanitised before they reach the templates, which emit
// them unescaped.
func (r *Renderer) Render(_ context.Context, model form.Model, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("daisyui renderer: template renderer is nil")
	}

	cfg := options.Theme
	if cfg == nil {
		cfg = r.Theme("")
	}
	action := strings.TrimSpace(options.Action)
	if action == "" {
		action = DefaultAction
	}

	data := map[string]any{
		"form":  sanitizeModel(model),
		"theme": themeContext(cfg),
		"page": map[string]any{
			"title":    r.title,
			"action":   action,
			"links":    options.Links,
			"variants": variantList(r.manifest),
		},
	}

	name := "page"
	if options.Fragment {
		name = "form"
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("daisyui renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderResult renders the submission fragment swapped into #result.
func (r *Renderer) RenderResult(_ context.Context, result render.Result) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("daisyui renderer: template renderer is nil")
	}

	data := map[string]any{"payload": string(result.Payload)}
	if result.Err != nil {
		data["error"] = result.Err.Error()
	}
	out, err := r.templates.RenderTemplate("result", data)
	if err != nil {
		return nil, fmt.Errorf("daisyui renderer: render result: %w", err)
	}
	return []byte(out), nil
}

func sanitizeModel(model form.Model) form.Model {
	out := model
	out.Description = sanitizeDescription(model.Description)
	out.Fields = make([]form.Field, len(model.Fields))
	for i, field := range model.Fields {
		field.Description = sanitizeDescription(field.Description)
		out.Fields[i] = field
	}
	return out
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{"variant": DefaultVariant}
	}
	ctx := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx["stylesheet"] = cfg.AssetURL(assetStylesheet)
		ctx["tailwind"] = cfg.AssetURL(assetTailwind)
		ctx["htmx"] = cfg.AssetURL(assetHTMX)
	}
	return ctx
}

// variantList keeps the built-in display order and appends variants that
// only a custom manifest declares.
func variantList(manifest *theme.Manifest) []string {
	if manifest == nil {
		return Variants()
	}
	out := make([]string, 0, len(manifest.Variants))
	seen := make(map[string]bool, len(manifest.Variants))
	for _, name := range variantNames {
		if _, ok := manifest.Variants[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range manifest.Variants {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
