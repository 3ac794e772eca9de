package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/internal/jsonschema/loader"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/prompt"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func newOrchestrator(settings config.Settings) *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.WithLoader(
		loader.NewWithOptions(schema.WithHTTPFallback(settings.RemoteTimeout)),
	))
}

// target resolves the schema flags shared by the one-shot commands. Serve
// specific settings are not validated here.
func target(cmd *cli.Command) (orchestrator.Target, config.Settings, error) {
	settings := config.Defaults()
	settings.SchemaPath = cmd.String("schema")
	settings.Component = cmd.String("component")
	settings.RemoteTimeout = cmd.Duration("remote-timeout")

	source, err := schema.ParseSource(settings.SchemaPath)
	if err != nil {
		return orchestrator.Target{}, settings, err
	}
	return orchestrator.Target{Source: source, Component: settings.Component}, settings, nil
}

func (a *app) defaults(ctx context.Context, cmd *cli.Command) error {
	tgt, settings, err := target(cmd)
	if err != nil {
		return err
	}
	values, err := newOrchestrator(settings).Defaults(ctx, tgt)
	if err != nil {
		return err
	}
	return writeValues(a.stdout, values)
}

func (a *app) coerce(ctx context.Context, cmd *cli.Command) error {
	tgt, settings, err := target(cmd)
	if err != nil {
		return err
	}

	var raw schema.RawFormData
	if args := cmd.Args().Slice(); len(args) > 0 {
		raw, err = parsePairs(args)
	} else {
		raw, err = readJSONObject(a.stdin)
	}
	if err != nil {
		return err
	}

	sub, err := newOrchestrator(settings).Submit(ctx, tgt, raw)
	if err != nil {
		return err
	}
	if len(sub.Fallbacks) > 0 {
		fmt.Fprintf(a.stderr, "kept as text: %s\n", strings.Join(sub.Fallbacks, ", "))
	}
	_, err = fmt.Fprintln(a.stdout, string(sub.Payload))
	return err
}

func (a *app) render(ctx context.Context, cmd *cli.Command) error {
	tgt, settings, err := target(cmd)
	if err != nil {
		return err
	}
	orch := newOrchestrator(settings)

	out, err := orch.Generate(ctx, orchestrator.Request{
		Target:       tgt,
		Prefill:      !cmd.Bool("empty"),
		Renderer:     cmd.String("renderer"),
		ThemeVariant: cmd.String("theme"),
		FormOptions:  form.DefaultOptions(),
	})
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, out.Body, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(a.stderr, "Form written to %s\n", path)
		return nil
	}
	_, err = a.stdout.Write(out.Body)
	return err
}

func (a *app) prompt(ctx context.Context, cmd *cli.Command) error {
	tgt, settings, err := target(cmd)
	if err != nil {
		return err
	}
	orch := newOrchestrator(settings)

	obj, err := orch.Object(ctx, tgt)
	if err != nil {
		return err
	}
	defaults, err := schema.ExtractDefaults(obj)
	if err != nil {
		return err
	}

	model := form.Build(obj, defaults, form.DefaultOptions())
	raw, err := prompt.Fill(ctx, a.driver(), model, prompt.Options{StrictNumbers: cmd.Bool("strict")})
	if err != nil {
		return err
	}

	values, err := schema.CoerceSubmission(obj, raw)
	if err != nil {
		return err
	}
	return writeValues(a.stdout, values)
}

func writeValues(w io.Writer, values schema.Values) error {
	payload, err := values.MarshalIndent()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

// parsePairs reads key=value arguments. A bare key counts as a checked
// checkbox.
func parsePairs(args []string) (schema.RawFormData, error) {
	raw := make(schema.RawFormData, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		if !found {
			value = "on"
		}
		raw[key] = value
	}
	return raw, nil
}

func readJSONObject(r io.Reader) (schema.RawFormData, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("read JSON object from stdin: %w", err)
	}
	return schema.RawFormDataFromMap(payload), nil
}
