package schemaform

import (
	internalLoader "github.com/goliatone/go-schemaform/internal/jsonschema/loader"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

// Parse turns a document, a decoded mapping or an Object into an Object.
func Parse(doc any) (schema.Object, error) {
	return schema.Parse(doc)
}
