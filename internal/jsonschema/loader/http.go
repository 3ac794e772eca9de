package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"
)

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("jsonschema loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("jsonschema loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("jsonschema loader: unexpected status %s: %w", resp.Status, fs.ErrNotExist)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, errors.New("jsonschema loader: unexpected status " + resp.Status)
	}

	return io.ReadAll(resp.Body)
}
