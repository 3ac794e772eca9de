// Package jsonmodel renders the form model itself as JSON for clients that
// build their own controls.
package jsonmodel

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
)

type Renderer struct{}

var _ render.Renderer = Renderer{}

func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return "json"
}

func (Renderer) ContentType() string {
	return "application/json"
}

// Render ignores presentation options; only Action is carried through so
// clients know where to post.
func (Renderer) Render(_ context.Context, model form.Model, options render.RenderOptions) ([]byte, error) {
	payload := struct {
		form.Model
		Action string `json:"action,omitempty"`
	}{Model: model, Action: options.Action}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode model: %w", err)
	}
	return out, nil
}
