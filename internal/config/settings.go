package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaform/pkg/log"
	"github.com/goliatone/go-schemaform/pkg/renderers/daisyui"
)

const (
	DefaultSchemaPath = "test_files/voxtral_config_schema.json"
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 5001
	DefaultRenderer   = "daisyui"
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds everything the serve command needs. Values come from the
// optional settings file first, then from flags and SCHEMAFORM_* variables.
type Settings struct {
	SchemaPath      string        `yaml:"schema"`
	Component       string        `yaml:"component"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Theme           string        `yaml:"theme"`
	Renderer        string        `yaml:"renderer"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	RemoteTimeout   time.Duration `yaml:"remote_timeout"`
	MonitorInterval time.Duration `yaml:"monitor_interval"`
}

// Defaults mirrors the flag defaults.
func Defaults() Settings {
	return Settings{
		SchemaPath:    DefaultSchemaPath,
		Host:          DefaultHost,
		Port:          DefaultPort,
		Theme:         daisyui.DefaultVariant,
		Renderer:      DefaultRenderer,
		LogLevel:      "info",
		LogFormat:     string(log.FormatText),
		RemoteTimeout: 10 * time.Second,
	}
}

// LoadFile overlays the YAML settings file at path onto s. Keys missing from
// the file keep their current value.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}

// Validate reports every problem at once.
func (s *Settings) Validate() error {
	var merr error

	if strings.TrimSpace(s.SchemaPath) == "" {
		merr = multierror.Append(merr, errors.New("schema path is required"))
	}
	if s.Port < 1 || s.Port > 65535 {
		merr = multierror.Append(merr, fmt.Errorf("port %d out of range", s.Port))
	}
	if strings.TrimSpace(s.Host) == "" {
		merr = multierror.Append(merr, errors.New("host is required"))
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		merr = multierror.Append(merr, err)
	}
	if _, err := log.ParseFormat(s.LogFormat); err != nil {
		merr = multierror.Append(merr, err)
	}
	if s.Theme != "" && !knownVariant(s.Theme) {
		merr = multierror.Append(merr, fmt.Errorf("unknown theme %q", s.Theme))
	}
	if s.RemoteTimeout < 0 {
		merr = multierror.Append(merr, errors.New("remote timeout must not be negative"))
	}
	if s.MonitorInterval < 0 {
		merr = multierror.Append(merr, errors.New("monitor interval must not be negative"))
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, merr)
	}
	return nil
}

// Addr is the listen address.
func (s Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// BrowseURL is the address printed for humans; wildcard hosts become
// localhost.
func (s Settings) BrowseURL() string {
	host := s.Host
	if host == "0.0.0.0" || host == "::" || host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port))
}

func knownVariant(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, variant := range daisyui.Variants() {
		if variant == name {
			return true
		}
	}
	return false
}
