// Package orchestrator wires the loader → schema → form model → renderer
// pipeline and the matching submission path, so callers need a single entry
// point per request.
package orchestrator
