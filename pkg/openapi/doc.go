// Package openapi reads configuration schemas stored as components of an
// OpenAPI 3 document and converts them into schema.Object values. kin-openapi
// stays behind this package so callers only see the schema types.
package openapi
