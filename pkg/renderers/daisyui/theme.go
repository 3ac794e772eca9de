package daisyui

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	ThemeName      = "daisyui"
	DefaultVariant = "light"

	assetStylesheet = "daisyui.stylesheet"
	assetTailwind   = "tailwind.script"
	assetHTMX       = "htmx.script"
)

var darkVariants = map[string]bool{
	"dark":      true,
	"synthwave": true,
	"halloween": true,
	"forest":    true,
	"dracula":   true,
	"night":     true,
	"coffee":    true,
	"business":  true,
}

var variantNames = []string{
	"light", "dark", "cupcake", "bumblebee", "emerald", "corporate",
	"synthwave", "retro", "valentine", "halloween", "garden", "forest",
	"lofi", "pastel", "dracula", "business", "night", "coffee", "winter", "nord",
}

// Manifest describes the DaisyUI theme with one variant per built-in DaisyUI
// palette. Every asset is served from the jsDelivr CDN.
func Manifest() *theme.Manifest {
	variants := make(map[string]theme.Variant, len(variantNames))
	for _, name := range variantNames {
		scheme := "light"
		if darkVariants[name] {
			scheme = "dark"
		}
		variants[name] = theme.Variant{
			Tokens: map[string]string{
				"data-theme":   name,
				"color-scheme": scheme,
			},
		}
	}

	return &theme.Manifest{
		Name:    ThemeName,
		Version: "4.12.10",
		Tokens: map[string]string{
			"data-theme":   DefaultVariant,
			"color-scheme": "light",
			"radius-box":   "1rem",
		},
		Assets: theme.Assets{
			Prefix: "https://cdn.jsdelivr.net/npm",
			Files: map[string]string{
				assetStylesheet: "daisyui@4.12.10/dist/full.min.css",
				assetTailwind:   "@tailwindcss/browser@4.1.11/dist/index.global.js",
				assetHTMX:       "htmx.org@1.9.12/dist/htmx.min.js",
			},
		},
		Variants: variants,
	}
}

// Variants lists the selectable variant names in display order.
func Variants() []string {
	out := make([]string, len(variantNames))
	copy(out, variantNames)
	return out
}

// NewRegistry returns a theme registry holding the given manifests, or the
// built-in DaisyUI manifest when none are passed.
func NewRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Manifest()}
	}
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("daisyui: register theme manifest: %w", err)
		}
	}
	return registry, nil
}

// NewSelector resolves themes against provider, defaulting to the DaisyUI
// theme and its light variant.
func NewSelector(provider theme.ThemeProvider) theme.Selector {
	return theme.Selector{
		Registry:       provider,
		DefaultTheme:   ThemeName,
		DefaultVariant: DefaultVariant,
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}
