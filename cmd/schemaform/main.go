// Command schemaform serves an HTML form generated from a JSON Schema and
// converts submissions back into typed JSON.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/pkg/log"
	"github.com/goliatone/go-schemaform/pkg/prompt"
)

var version = "dev"

// app carries the process streams so commands can be exercised in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	driver func() prompt.Driver
}

func main() {
	slog.SetDefault(log.NewFromEnv())

	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		driver: prompt.NewSurveyDriver,
	}
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "schemaform",
		Usage:     "JSON Schema to UI demo: render a config form and echo typed submissions",
		Version:   version,
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		// Root flags are inherited by every subcommand.
		Flags:     append(schemaFlags(), serveFlags()...),
		Action:    a.serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the web demo (default)",
				Action: a.serve,
			},
			{
				Name:   "defaults",
				Usage:  "print the schema defaults as JSON",
				Action: a.defaults,
			},
			{
				Name:      "coerce",
				Usage:     "coerce key=value pairs (or a JSON object on stdin) against the schema",
				ArgsUsage: "[key=value ...]",
				Action:    a.coerce,
			},
			{
				Name:  "render",
				Usage: "render the form once and write it to stdout or a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "renderer",
						Value: config.DefaultRenderer,
						Usage: "renderer to use (daisyui, json)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file (stdout if empty)",
					},
					&cli.BoolFlag{
						Name:  "empty",
						Usage: "render without the schema defaults",
					},
				},
				Action: a.render,
			},
			{
				Name:  "prompt",
				Usage: "fill the configuration in the terminal and print the typed JSON",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "re-ask until numeric answers parse",
					},
				},
				Action: a.prompt,
			},
		},
	}
}

func schemaFlags() []cli.Flag {
	defaults := config.Defaults()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Value:   defaults.SchemaPath,
			Usage:   "path or URL of the JSON Schema (or OpenAPI document)",
			Sources: cli.EnvVars("SCHEMAFORM_SCHEMA"),
		},
		&cli.StringFlag{
			Name:    "component",
			Usage:   "schema name under components.schemas when --schema is an OpenAPI document",
			Sources: cli.EnvVars("SCHEMAFORM_COMPONENT"),
		},
		&cli.DurationFlag{
			Name:    "remote-timeout",
			Value:   defaults.RemoteTimeout,
			Usage:   "timeout for schemas fetched over HTTP",
			Sources: cli.EnvVars("SCHEMAFORM_REMOTE_TIMEOUT"),
		},
	}
}

func serveFlags() []cli.Flag {
	defaults := config.Defaults()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "optional YAML settings file",
			Sources: cli.EnvVars("SCHEMAFORM_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "host",
			Value:   defaults.Host,
			Usage:   "host to run the server on",
			Sources: cli.EnvVars("SCHEMAFORM_HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   defaults.Port,
			Usage:   "port to run the server on",
			Sources: cli.EnvVars("SCHEMAFORM_PORT"),
		},
		&cli.StringFlag{
			Name:    "theme",
			Value:   defaults.Theme,
			Usage:   "default DaisyUI theme variant",
			Sources: cli.EnvVars("SCHEMAFORM_THEME"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   defaults.LogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Sources: cli.EnvVars("SCHEMAFORM_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   defaults.LogFormat,
			Usage:   "log format (text, json, logfmt)",
			Sources: cli.EnvVars("SCHEMAFORM_LOG_FORMAT"),
		},
		&cli.DurationFlag{
			Name:    "monitor-interval",
			Usage:   "log process resource usage at this interval (0 disables)",
			Sources: cli.EnvVars("SCHEMAFORM_MONITOR_INTERVAL"),
		},
	}
}
