package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("jsonschema loader: fs is nil")
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return nil, errors.New("jsonschema loader: fs path is required")
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("jsonschema loader: invalid fs path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := fs.Stat(files, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("jsonschema loader: %s: %w", name, errIsDirectory)
	}

	return fs.ReadFile(files, name)
}
