package form

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// DefaultLabeler converts a property name into a human-friendly label. It
// splits on underscores, dashes, spaces and camelCase boundaries.
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	words := strings.Fields(strcase.ToDelimited(name, ' '))
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
