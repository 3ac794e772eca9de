package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches schema documents from different sources (filesystem, fs.FS,
// HTTP). The implementation lives under internal/jsonschema/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS locations.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour. Nil means
	// HTTP sources are disabled unless AllowHTTPFallback is true.
	HTTPClient *http.Client

	// AllowHTTPFallback enables a default HTTP client when no client is
	// supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceKindFS locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// LoadObject loads, decodes and parses the document behind src. Nothing is
// cached: every call reads the source again.
func LoadObject(ctx context.Context, loader Loader, src Source) (Object, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return Object{}, err
	}
	return Parse(doc)
}
