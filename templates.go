package schemaform

import (
	"io/fs"

	"github.com/goliatone/go-schemaform/pkg/renderers/daisyui"
)

// EmbeddedTemplates exposes the built-in DaisyUI templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return daisyui.TemplatesFS()
}
