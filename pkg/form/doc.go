// Package form turns a parsed flat object schema plus a set of values into the
// field descriptors a renderer needs: one widget per property, labelled and
// prefilled.
package form
