package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/pkg/prompt"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const fixture = "testdata/voxtral_config_schema.json"

// defaultsDriver accepts every proposed default.
type defaultsDriver struct{}

func (defaultsDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	return cfg.Default, nil
}

func (defaultsDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (defaultsDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (defaultsDriver) Info(context.Context, string) error { return nil }

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	a := &app{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
		driver: func() prompt.Driver { return defaultsDriver{} },
	}
	err := a.command().Run(context.Background(), append([]string{"schemaform"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestDefaultsCommand(t *testing.T) {
	stdout, _, err := run(t, "", "defaults", "--schema", fixture)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"model_id": "mistralai/Voxtral-Mini-3B-2507",
		"device": "auto",
		"max_new_tokens": 256,
		"temperature": 0.0,
		"return_timestamps": false,
		"compile_model": true
	}`, stdout)
}

func TestCoerceCommand_Pairs(t *testing.T) {
	stdout, stderr, err := run(t, "", "coerce", "--schema", fixture, "max_new_tokens=abc", "temperature=0.5", "compile_model", "extra=1")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"max_new_tokens": "abc",
		"temperature": 0.5,
		"compile_model": true,
		"return_timestamps": false
	}`, stdout)
	assert.Contains(t, stderr, "kept as text: max_new_tokens")
}

func TestCoerceCommand_Stdin(t *testing.T) {
	stdout, _, err := run(t, `{"max_new_tokens": 42, "return_timestamps": true, "compile_model": false}`, "coerce", "--schema", fixture)
	require.NoError(t, err)
	assert.JSONEq(t, `{"max_new_tokens": 42, "return_timestamps": true, "compile_model": false}`, stdout)
}

func TestCoerceCommand_RejectsEmptyKey(t *testing.T) {
	_, _, err := run(t, "", "coerce", "--schema", fixture, "=1")
	require.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	stdout, _, err := run(t, "", "render", "--schema", fixture, "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, stdout, `data-theme="dark"`)
	assert.Contains(t, stdout, `value="256"`)

	out := filepath.Join(t.TempDir(), "form.json")
	_, stderr, err := run(t, "", "render", "--schema", fixture, "--renderer", "json", "--empty", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Form written to")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "compile_model"`)
	assert.NotContains(t, string(data), `"value": "256"`)
}

func TestPromptCommand_AcceptsDefaults(t *testing.T) {
	stdout, _, err := run(t, "", "prompt", "--schema", fixture)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"model_id": "mistralai/Voxtral-Mini-3B-2507",
		"device": "auto",
		"language": "",
		"max_new_tokens": 256,
		"temperature": 0.0,
		"return_timestamps": false,
		"compile_model": true
	}`, stdout)
}

func TestServe_MissingSchemaListsAlternatives(t *testing.T) {
	stdout, _, err := run(t, "", "serve", "--schema", filepath.Join("testdata", "missing_schema.json"))
	require.ErrorIs(t, err, errSchemaMissing)
	assert.Contains(t, stdout, "Error: Schema file not found")
	assert.Contains(t, stdout, "Available schema files:")
	assert.Contains(t, stdout, filepath.Join("testdata", "voxtral_config_schema.json"))
}

func TestServe_InvalidSettings(t *testing.T) {
	_, _, err := run(t, "", "--schema", fixture, "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port 0 out of range")
}

func TestLoadSettings_ConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemaform.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: from-file_schema.json\nport: 7000\ntheme: dark\n"), 0o600))

	_, _, err := run(t, "", "serve", "--config", path, "--port", "7001")
	// The file schema does not exist, so serve stops after resolving settings.
	require.ErrorIs(t, err, errSchemaMissing)
	assert.Contains(t, err.Error(), "from-file_schema.json")
}

func TestPrintBanner(t *testing.T) {
	settings := config.Defaults()
	settings.SchemaPath = fixture

	var buf bytes.Buffer
	printBanner(&buf, settings, schema.Object{Title: "Voxtral"})

	out := buf.String()
	assert.Contains(t, out, "JSON Schema to UI Demo App")
	assert.Contains(t, out, "Title: Voxtral")
	assert.Contains(t, out, "Description: No description")
	assert.Contains(t, out, "Server: http://0.0.0.0:5001")
	assert.Contains(t, out, "http://localhost:5001/empty")
	assert.Contains(t, out, "http://localhost:5001/compact")
	assert.True(t, strings.HasSuffix(out, "\n"+bannerRule+"\n\n"), "banner should close with a rule and one blank line")
	assert.False(t, strings.HasSuffix(out, "\n\n\n"))
}
