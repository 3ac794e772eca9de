package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/internal/monitor"
	"github.com/goliatone/go-schemaform/internal/server"
	"github.com/goliatone/go-schemaform/pkg/log"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const bannerRule = "============================================================"

var errSchemaMissing = errors.New("schema file not found")

// loadSettings starts from the defaults, overlays the optional settings file
// and then every flag or SCHEMAFORM_* variable that was set explicitly.
func loadSettings(cmd *cli.Command) (config.Settings, error) {
	s := config.Defaults()
	if path := cmd.String("config"); path != "" {
		if err := s.LoadFile(path); err != nil {
			return s, err
		}
	}

	if cmd.IsSet("schema") {
		s.SchemaPath = cmd.String("schema")
	}
	if cmd.IsSet("component") {
		s.Component = cmd.String("component")
	}
	if cmd.IsSet("host") {
		s.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		s.Port = cmd.Int("port")
	}
	if cmd.IsSet("theme") {
		s.Theme = cmd.String("theme")
	}
	if cmd.IsSet("log-level") {
		s.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		s.LogFormat = cmd.String("log-format")
	}
	if cmd.IsSet("remote-timeout") {
		s.RemoteTimeout = cmd.Duration("remote-timeout")
	}
	if cmd.IsSet("monitor-interval") {
		s.MonitorInterval = cmd.Duration("monitor-interval")
	}
	return s, s.Validate()
}

func (a *app) serve(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	handler, err := log.CreateHandlerWithStrings(a.stderr, settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	source, err := schema.ParseSource(settings.SchemaPath)
	if err != nil {
		return err
	}
	if source.Kind() == schema.SourceKindFile {
		if err := checkSchemaFile(a.stdout, settings.SchemaPath); err != nil {
			return err
		}
	}

	orch := newOrchestrator(settings)
	obj, err := orch.Object(ctx, orchestrator.Target{Source: source, Component: settings.Component})
	if err != nil {
		return fmt.Errorf("error loading schema: %w", err)
	}

	srv, err := server.New(server.Options{
		Settings:     settings,
		Orchestrator: orch,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	printBanner(a.stdout, settings, obj)

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := monitor.New(settings.MonitorInterval, logger)
	mon.Run(shutdownCtx)
	defer mon.Wait()

	if err := srv.Start(shutdownCtx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// checkSchemaFile reports a missing schema together with the schema files
// found next to it.
func checkSchemaFile(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return nil
	}

	fmt.Fprintf(w, "Error: Schema file not found: %s\n", path)
	fmt.Fprintln(w, "\nAvailable schema files:")
	for _, candidate := range availableSchemas(filepath.Dir(path)) {
		fmt.Fprintf(w, "  - %s\n", candidate)
	}
	return fmt.Errorf("%w: %s", errSchemaMissing, path)
}

func availableSchemas(dir string) []string {
	var out []string
	for _, pattern := range []string{"*_schema.json", "*_schema.yaml", "*_schema.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out
}

func printBanner(w io.Writer, settings config.Settings, obj schema.Object) {
	title := obj.Title
	if title == "" {
		title = "Unknown"
	}
	description := obj.Description
	if description == "" {
		description = "No description"
	}
	base := settings.BrowseURL()

	fmt.Fprintln(w, "\n"+bannerRule)
	fmt.Fprintln(w, "JSON Schema to UI Demo App")
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintf(w, "\nSchema: %s\n", settings.SchemaPath)
	if settings.Component != "" {
		fmt.Fprintf(w, "Component: %s\n", settings.Component)
	}
	fmt.Fprintf(w, "Title: %s\n", title)
	fmt.Fprintf(w, "Description: %s\n", description)
	fmt.Fprintf(w, "\nServer: http://%s\n", settings.Addr())
	fmt.Fprintln(w, "\nAvailable routes:")
	for _, route := range server.Routes() {
		fmt.Fprintf(w, "  %-4s %-36s - %s\n", route.Method, base+route.Path, route.Description)
	}
	fmt.Fprint(w, "\n"+bannerRule+"\n\n")
}
