package orchestrator

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/form"
)

// Transformer mutates a form model after it is built and before it is
// rendered. Implementations can relabel fields or drop descriptions.
type Transformer interface {
	Transform(ctx context.Context, model *form.Model) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, model *form.Model) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, model *form.Model) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, model)
}
