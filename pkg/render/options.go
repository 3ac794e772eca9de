package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form model.
type RenderOptions struct {
	// Theme carries the resolved theme variant. Nil means the renderer default.
	Theme *theme.RendererConfig
	// Fragment renders the form alone, without the surrounding page.
	Fragment bool
	// Action overrides the submit endpoint targeted by the form.
	Action string
	// Links lists extra navigation entries shown by page layouts.
	Links []Link
}

// Link is a navigation entry rendered in the page header.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}
