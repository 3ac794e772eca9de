package openapi

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ComponentNames lists the schemas declared under components.schemas, sorted.
func ComponentNames(ctx context.Context, doc schema.Document) ([]string, error) {
	spec, err := load(ctx, doc)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		return nil, nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Component converts components.schemas.<name> into a schema.Object.
// Properties are returned in name order because kin-openapi does not keep
// declaration order. A missing component is a schema.NotFoundError; a
// document kin-openapi cannot load is a schema.ParseError.
func Component(ctx context.Context, doc schema.Document, name string) (schema.Object, error) {
	spec, err := load(ctx, doc)
	if err != nil {
		return schema.Object{}, err
	}

	location := doc.Location() + "#/components/schemas/" + name
	if spec.Components == nil {
		return schema.Object{}, schema.NotFoundError{Location: location}
	}
	ref, ok := spec.Components.Schemas[name]
	if !ok || ref == nil {
		return schema.Object{}, schema.NotFoundError{Location: location}
	}
	if ref.Value == nil {
		return schema.Object{}, schema.FormatError{
			Path:    "#/components/schemas/" + name,
			Message: fmt.Sprintf("unresolved reference %q", ref.Ref),
		}
	}
	return convertObject(name, ref.Value)
}

func load(ctx context.Context, doc schema.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw())
	if err != nil {
		return nil, schema.ParseError{Location: doc.Location(), Err: err}
	}
	return spec, nil
}

func convertObject(component string, src *openapi3.Schema) (schema.Object, error) {
	out := schema.Object{
		Title:       strings.TrimSpace(src.Title),
		Description: strings.TrimSpace(src.Description),
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out.Properties = make([]schema.Property, 0, len(names))
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			return schema.Object{}, schema.FormatError{
				Path:    "#/components/schemas/" + component + "/properties/" + name,
				Message: "property must be a mapping",
			}
		}
		out.Properties = append(out.Properties, convertProperty(name, ref.Value))
	}
	return out, nil
}

func convertProperty(name string, src *openapi3.Schema) schema.Property {
	prop := schema.Property{
		Name:        name,
		Type:        schemaType(src.Type),
		Title:       strings.TrimSpace(src.Title),
		Description: strings.TrimSpace(src.Description),
		Minimum:     copyFloat(src.Min),
		Maximum:     copyFloat(src.Max),
	}
	if src.Default != nil {
		if value, ok := literalValue(src.Default); ok {
			prop.Default = &value
		}
	}
	for _, item := range src.Enum {
		if value, ok := literalValue(item); ok {
			prop.Enum = append(prop.Enum, value.String())
		}
	}
	return prop
}

// literalValue undoes the float64 widening kin-openapi applies to every JSON
// number, so a whole number becomes an integer whatever the property type. This
// matches schema.ValueOf on a JSON document, where a default of 1 is an integer
// even on a number property. kin-openapi does not keep the source text, so 0.0
// in the document also reads back as the integer 0.
func literalValue(raw any) (schema.Value, bool) {
	if f, ok := raw.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return schema.IntValue(int64(f)), true
	}
	return schema.ValueOf(raw)
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 1 {
		return values[0]
	}
	return strings.Join(values, ",")
}

func copyFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
