// Package schemaform renders configuration forms from flat JSON Schema
// documents and converts submitted form values back into typed JSON.
package schemaform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Values aliases schema.Values, the typed configuration produced by both
// operations.
type Values = schema.Values

// RawFormData aliases schema.RawFormData.
type RawFormData = schema.RawFormData

// RenderOptions describes per-request overrides passed to renderers.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme variants are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider constructs a go-theme selector from a ThemeProvider and
// registers it with the orchestrator.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// ExtractDefaults returns the defaults declared by doc, copied verbatim.
func ExtractDefaults(doc any) (Values, error) {
	return schema.ExtractDefaults(doc)
}

// CoerceSubmission converts raw form strings into typed values following the
// property types of doc.
func CoerceSubmission(doc any, raw RawFormData) (Values, error) {
	return schema.CoerceSubmission(doc, raw)
}

// GenerateHTML loads the schema behind source and renders the prefilled page
// with the default DaisyUI renderer.
func GenerateHTML(ctx context.Context, source schema.Source, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	out, err := gen.Generate(ctx, orchestrator.Request{
		Target:      orchestrator.Target{Source: source},
		Prefill:     true,
		FormOptions: form.DefaultOptions(),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// GenerateHTMLFromDocument renders a pre-loaded document, bypassing the
// loader stage.
func GenerateHTMLFromDocument(ctx context.Context, doc schema.Document, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	out, err := gen.Generate(ctx, orchestrator.Request{
		Target:      orchestrator.Target{Document: &doc},
		Prefill:     true,
		FormOptions: form.DefaultOptions(),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
