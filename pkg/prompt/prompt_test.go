package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

type stubDriver struct {
	inputs     []string
	selectIdx  []int
	confirm    []bool
	info       []string
	inputCfgs  []InputConfig
	selectCfgs []SelectConfig
	inputPos   int
	selectPos  int
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputCfgs = append(s.inputCfgs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectCfgs = append(s.selectCfgs, cfg)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func sampleObject() schema.Object {
	tokens := schema.IntValue(256)
	return schema.Object{
		Title: "Demo",
		Properties: []schema.Property{
			{Name: "model", Type: schema.TypeString, Enum: []string{"base", "large"}},
			{Name: "max_tokens", Type: schema.TypeInteger, Default: &tokens},
			{Name: "verbose", Type: schema.TypeBoolean},
			{Name: "compile", Type: schema.TypeBoolean},
		},
	}
}

func TestFill_CollectsRawFormData(t *testing.T) {
	obj := sampleObject()
	defaults, err := schema.ExtractDefaults(obj)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	model := form.Build(obj, defaults, form.DefaultOptions())

	driver := &stubDriver{
		selectIdx: []int{1},
		inputs:    []string{"abc"},
		confirm:   []bool{true, false},
	}

	raw, err := Fill(context.Background(), driver, model, Options{})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := schema.RawFormData{"model": "large", "max_tokens": "abc", "verbose": "on"}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Fatalf("raw mismatch (-want +got):\n%s", diff)
	}
	if driver.inputCfgs[0].Default != "256" {
		t.Fatalf("input default should come from the schema default, got %q", driver.inputCfgs[0].Default)
	}
	if driver.inputCfgs[0].Validator != nil {
		t.Fatalf("lenient mode must not validate numbers")
	}
	if diff := cmp.Diff([]string{"Demo"}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	values, err := schema.CoerceSubmission(obj, raw)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	wantValues := schema.Values{
		"model":      schema.StringValue("large"),
		"max_tokens": schema.StringValue("abc"),
		"verbose":    schema.BoolValue(true),
		"compile":    schema.BoolValue(false),
	}
	if diff := cmp.Diff(wantValues, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_StrictNumbers(t *testing.T) {
	model := form.Build(sampleObject(), nil, form.DefaultOptions())
	driver := &stubDriver{selectIdx: []int{0}, inputs: []string{"12"}, confirm: []bool{false, false}}

	if _, err := Fill(context.Background(), driver, model, Options{StrictNumbers: true}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	validate := driver.inputCfgs[0].Validator
	if validate == nil {
		t.Fatalf("expected number validator")
	}
	if err := validate(" 12 "); err != nil {
		t.Fatalf("valid integer rejected: %v", err)
	}
	if err := validate("1.5"); err == nil {
		t.Fatalf("fractional value accepted for integer field")
	}
	if driver.selectCfgs[0].DefaultIndex != -1 {
		t.Fatalf("select without value should have no default, got %d", driver.selectCfgs[0].DefaultIndex)
	}
}

func TestFill_PropagatesDriverErrors(t *testing.T) {
	model := form.Build(sampleObject(), nil, form.DefaultOptions())
	driver := &stubDriver{}

	_, err := Fill(context.Background(), driver, model, Options{})
	if err == nil {
		t.Fatalf("expected error from exhausted driver")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	if got := translateSurveyErr(other); !errors.Is(got, other) {
		t.Fatalf("unexpected translation %v", got)
	}
}
