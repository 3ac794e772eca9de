package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/internal/metrics"
	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const maxBodyBytes = 1 << 20

var errUnsupportedBody = errors.New("request body must be a JSON object")

type handlers struct {
	settings config.Settings
	target   orchestrator.Target
	orch     *orchestrator.Orchestrator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	opts := form.DefaultOptions()
	opts.Compact = true
	h.page(w, r, true, opts)
}

func (h *handlers) empty(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, false, form.DefaultOptions())
}

func (h *handlers) compact(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, true, form.Options{ShowTitle: true, Compact: true})
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request, prefill bool, opts form.Options) {
	out, err := h.orch.Generate(r.Context(), orchestrator.Request{
		Target:       h.target,
		Prefill:      prefill,
		Renderer:     h.settings.Renderer,
		ThemeVariant: h.variant(r),
		FormOptions:  opts,
		RenderOptions: render.RenderOptions{
			Fragment: r.Header.Get("HX-Request") == "true",
			Links: []render.Link{
				{Label: "Defaults", Href: "/"},
				{Label: "Empty", Href: "/empty"},
				{Label: "Compact", Href: "/compact"},
			},
		},
	})
	if err != nil {
		h.fail(w, r, statusFor(err), err)
		return
	}
	writeBody(w, http.StatusOK, out.ContentType, out.Body)
}

func (h *handlers) formJSON(w http.ResponseWriter, r *http.Request) {
	out, err := h.orch.Generate(r.Context(), orchestrator.Request{
		Target:        h.target,
		Prefill:       r.URL.Query().Get("empty") == "",
		Renderer:      "json",
		FormOptions:   form.DefaultOptions(),
		RenderOptions: render.RenderOptions{Action: "/submit"},
	})
	if err != nil {
		h.failJSON(w, statusFor(err), err)
		return
	}
	writeBody(w, http.StatusOK, out.ContentType, out.Body)
}

func (h *handlers) defaults(w http.ResponseWriter, r *http.Request) {
	values, err := h.orch.Defaults(r.Context(), h.target)
	if err != nil {
		h.failJSON(w, statusFor(err), err)
		return
	}
	payload, err := values.MarshalIndent()
	if err != nil {
		h.failJSON(w, http.StatusInternalServerError, err)
		return
	}
	writeBody(w, http.StatusOK, "application/json", payload)
}

func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	raw, err := readSubmission(w, r)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}

	sub, err := h.orch.Submit(r.Context(), h.target, raw)
	if err != nil {
		h.fail(w, r, statusFor(err), err)
		return
	}

	h.metrics.ObserveSubmission(sub.Fallbacks)
	if len(sub.Fallbacks) > 0 {
		h.logger.Info("submission kept raw text", "fallbacks", sub.Fallbacks)
	}

	if wantsJSON(r) {
		writeBody(w, http.StatusOK, "application/json", sub.Payload)
		return
	}

	results, ok := h.resultRenderer()
	if !ok {
		writeBody(w, http.StatusOK, "application/json", sub.Payload)
		return
	}
	body, err := results.RenderResult(r.Context(), render.Result{Payload: sub.Payload})
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeBody(w, http.StatusOK, "text/html; charset=utf-8", body)
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	writeBody(w, http.StatusOK, "text/plain; charset=utf-8", []byte("ok\n"))
}

// variant reads the ?theme= query parameter, falling back to the configured
// variant.
func (h *handlers) variant(r *http.Request) string {
	if variant := strings.TrimSpace(r.URL.Query().Get("theme")); variant != "" {
		return variant
	}
	return h.settings.Theme
}

func (h *handlers) resultRenderer() (render.ResultRenderer, bool) {
	renderer, err := h.orch.Renderer(h.settings.Renderer)
	if err != nil {
		return nil, false
	}
	results, ok := renderer.(render.ResultRenderer)
	return results, ok
}

// fail answers in the representation the client asked for: JSON, the result
// fragment of an HTML renderer, or plain text.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)

	if wantsJSON(r) {
		h.failJSON(w, status, err)
		return
	}
	if results, ok := h.resultRenderer(); ok {
		body, renderErr := results.RenderResult(r.Context(), render.Result{Err: err})
		if renderErr == nil {
			writeBody(w, status, "text/html; charset=utf-8", body)
			return
		}
	}
	http.Error(w, err.Error(), status)
}

func (h *handlers) failJSON(w http.ResponseWriter, status int, err error) {
	payload, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeBody(w, status, "application/json", payload)
}

// statusFor maps pipeline errors to responses. Schema problems (format,
// parse, missing file) are the server's fault and stay 500.
func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// readSubmission accepts a JSON object body or a url-encoded/multipart form.
func readSubmission(w http.ResponseWriter, r *http.Request) (schema.RawFormData, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var payload map[string]any
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("%w: %w", errUnsupportedBody, err)
		}
		if payload == nil {
			return nil, errUnsupportedBody
		}
		return schema.RawFormDataFromMap(payload), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	}
	return schema.RawFormDataFromValues(r.PostForm), nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
