package render

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/form"
)

// Renderer converts a form Model into a byte representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, model form.Model, options RenderOptions) ([]byte, error)
}

// ResultRenderer is implemented by renderers that can also present the typed
// values produced by a submission.
type ResultRenderer interface {
	RenderResult(ctx context.Context, result Result) ([]byte, error)
}

// Result is the outcome of a submission shown back to the user. Payload holds
// the indented JSON document; Err is set instead when coercion failed.
type Result struct {
	Payload []byte
	Err     error
}
