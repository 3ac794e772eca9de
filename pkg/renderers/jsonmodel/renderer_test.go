package jsonmodel_test

import (
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/jsonmodel"
	"github.com/goliatone/go-schemaform/pkg/testsupport"
)

func TestRenderer_EncodesModel(t *testing.T) {
	model := form.Model{
		Title: "Demo",
		Fields: []form.Field{
			{Name: "n", Type: "integer", Label: "N", Widget: form.WidgetNumber, InputType: "number", Step: "1", Value: "3", HasValue: true},
		},
	}

	out, err := jsonmodel.New().Render(testsupport.Context(), model, render.RenderOptions{Action: "/submit"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		form.Model
		Action string `json:"action"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(model, decoded.Model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if decoded.Action != "/submit" {
		t.Fatalf("unexpected action %q", decoded.Action)
	}
}

func TestRenderer_Contract(t *testing.T) {
	model := form.Model{
		Title: "Demo",
		Fields: []form.Field{
			{Name: "n", Type: "integer", Label: "N", Widget: form.WidgetNumber, InputType: "number", Step: "1", Value: "3", HasValue: true},
			{Name: "mode", Type: "string", Label: "Mode", Widget: form.WidgetSelect, Options: []form.Option{
				{Value: "a", Label: "a"},
				{Value: "b", Label: "b"},
			}},
		},
		Compact: true,
	}

	output, err := jsonmodel.New().Render(testsupport.Context(), model, render.RenderOptions{Action: "/submit"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "form_output.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}

	golden := testsupport.MustLoadFormModel(t, goldenPath)
	if diff := testsupport.CompareGolden(model, golden); diff != "" {
		t.Fatalf("golden model mismatch (-want +got):\n%s", diff)
	}

	var want, got map[string]any
	if err := json.Unmarshal(testsupport.MustReadGolden(t, goldenPath), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if err := json.Unmarshal(output, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
