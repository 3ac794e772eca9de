package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, form.Model, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register html: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "json"}); err != nil {
		t.Fatalf("register json: %v", err)
	}

	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	fallback, err := registry.Get("")
	if err != nil {
		t.Fatalf("get fallback: %v", err)
	}
	if fallback.Name() != "html" {
		t.Fatalf("fallback should be the first registered renderer, got %q", fallback.Name())
	}

	if _, err := registry.Get("pdf"); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if !registry.Has("json") {
		t.Fatalf("json renderer should be registered")
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
}
