package loader

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Loader implements schema.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options schema.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// NewWithOptions is a convenience wrapper around schema.NewLoaderOptions.
func NewWithOptions(options ...schema.LoaderOption) *Loader {
	return New(schema.NewLoaderOptions(options...))
}

var errIsDirectory = errors.New("is a directory")

// Load fetches a document from the provided source and wraps it in a Document.
// Locations that do not resolve to a readable file (missing, a directory, no
// permission, HTTP 404) are reported as schema.NotFoundError; empty content is
// a schema.ParseError.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("jsonschema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if !l.allowHTTP {
			return schema.Document{}, errors.New("jsonschema loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("jsonschema loader: unsupported source kind")
	}
	if err != nil {
		if unreadable(err) {
			return schema.Document{}, schema.NotFoundError{Location: src.Location(), Err: err}
		}
		return schema.Document{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return schema.Document{}, schema.ParseError{Location: src.Location(), Err: errors.New("document is empty")}
	}

	return schema.NewDocument(src, data)
}

func unreadable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, errIsDirectory)
}
