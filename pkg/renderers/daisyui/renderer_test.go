package daisyui_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/daisyui"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/testsupport"
)

func fixtureModel(t *testing.T, withDefaults bool, opts form.Options) form.Model {
	t.Helper()

	obj := testsupport.MustParseObject(t, filepath.Join("..", "..", "schema", "testdata", "voxtral_config_schema.json"))
	var values schema.Values
	if withDefaults {
		var err error
		values, err = schema.ExtractDefaults(obj)
		if err != nil {
			t.Fatalf("defaults: %v", err)
		}
	}
	return form.Build(obj, values, opts)
}

func newRenderer(t *testing.T) *daisyui.Renderer {
	t.Helper()
	renderer, err := daisyui.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func TestRenderer_RenderPage(t *testing.T) {
	renderer := newRenderer(t)
	model := fixtureModel(t, true, form.DefaultOptions())

	output, err := renderer.Render(testsupport.Context(), model, render.RenderOptions{
		Links: []render.Link{{Label: "Empty", Href: "/empty"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	assertContains(t, html,
		`<html lang="en" data-theme="light">`,
		`https://cdn.jsdelivr.net/npm/daisyui@4.12.10/dist/full.min.css`,
		`<script src="https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4.1.11/dist/index.global.js"></script>`,
		`hx-post="/submit" hx-target="#result" hx-swap="innerHTML"`,
		`<div id="result" class="mt-6"></div>`,
		`<a class="btn btn-ghost btn-sm" href="/empty">Empty</a>`,
		`<option value="dark">Dark</option>`,
		`<h2 class="card-title text-2xl font-bold">Voxtral Transcription Configuration</h2>`,
		`name="max_new_tokens" value="256" step="1" min="1" max="8192"`,
		`name="temperature" value="0.0" step="any" min="0" max="2"`,
		`name="compile_model" checked>`,
		`<option value="mistralai/Voxtral-Mini-3B-2507" selected>`,
		`<code>cuda</code>`,
	)
	if strings.Contains(html, `name="return_timestamps" checked`) {
		t.Fatalf("return_timestamps defaults to false and must render unchecked")
	}
}

func TestRenderer_RenderEmptyFragment(t *testing.T) {
	renderer := newRenderer(t)
	model := fixtureModel(t, false, form.Options{Compact: true})

	output, err := renderer.Render(testsupport.Context(), model, render.RenderOptions{Fragment: true, Action: "/save"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	if strings.Contains(html, "<html") {
		t.Fatalf("fragment must not include the page layout")
	}
	assertContains(t, html,
		`hx-post="/save"`,
		`grid grid-cols-1 md:grid-cols-2 gap-2`,
		`name="max_new_tokens" value=""`,
		`<option value="" disabled selected>Select an option</option>`,
	)
	if strings.Contains(html, " checked") {
		t.Fatalf("empty form must not check any checkbox")
	}
	if strings.Contains(html, "card-body") {
		t.Fatalf("card wrapper disabled but rendered")
	}
}

func TestRenderer_SanitisesDescriptions(t *testing.T) {
	renderer := newRenderer(t)
	model := form.Model{
		Fields: []form.Field{{
			Name:        "device",
			Label:       "Device",
			Widget:      form.WidgetText,
			InputType:   "text",
			Description: `Use <code>cpu</code><script>alert(1)</script> <img src=x onerror=alert(1)>`,
		}},
	}

	output, err := renderer.Render(testsupport.Context(), model, render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	assertContains(t, html, `Use <code>cpu</code>`)
	if strings.Contains(html, "<script>alert") || strings.Contains(html, "onerror") {
		t.Fatalf("unsafe markup leaked into output:\n%s", html)
	}
}

func TestRenderer_ThemeVariant(t *testing.T) {
	renderer := newRenderer(t)
	model := fixtureModel(t, true, form.DefaultOptions())

	output, err := renderer.Render(testsupport.Context(), model, render.RenderOptions{Theme: renderer.Theme("dracula")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(output),
		`data-theme="dracula"`,
		`<option value="dracula" selected>Dracula</option>`,
		`--color-scheme: dark;`,
	)
}

func TestRenderer_RenderResult(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.RenderResult(testsupport.Context(), render.Result{Payload: []byte("{\n  \"n\": 42\n}")})
	if err != nil {
		t.Fatalf("render result: %v", err)
	}
	assertContains(t, string(output),
		"Submitted Configuration:",
		"<pre class=\"bg-base-100 p-4 rounded-lg overflow-auto\">{\n  &quot;n&quot;: 42\n}</pre>",
	)

	output, err = renderer.RenderResult(testsupport.Context(), render.Result{Err: errors.New("schema: <broken>")})
	if err != nil {
		t.Fatalf("render error result: %v", err)
	}
	assertContains(t, string(output), `alert-error`, `schema: &lt;broken&gt;`)
}
