package schema

import (
	"fmt"
	"strings"
)

// FormatError reports a schema document that is structurally unusable: the
// document itself, its properties member, or a property entry is not a
// mapping.
type FormatError struct {
	Path    string
	Message string
}

func (e FormatError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid schema document"
	}
	if strings.TrimSpace(e.Path) == "" {
		return "schema: " + msg
	}
	return fmt.Sprintf("schema: %s (%s)", msg, e.Path)
}

// ParseError reports a payload that is not valid JSON or YAML.
type ParseError struct {
	Location string
	Err      error
}

func (e ParseError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("schema: parse document: %v", e.Err)
	}
	return fmt.Sprintf("schema: parse %s: %v", e.Location, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a schema location that does not resolve to a
// readable document.
type NotFoundError struct {
	Location string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("schema: document not found: %s", e.Location)
	}
	return fmt.Sprintf("schema: document not found: %s: %v", e.Location, e.Err)
}

func (e NotFoundError) Unwrap() error {
	return e.Err
}
