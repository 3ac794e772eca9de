package schema

import (
	"fmt"
	"strings"
)

// Property types understood by the mapper. Any other declared type is kept
// verbatim and handled like a string.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Property describes one configuration field of a flat object schema.
type Property struct {
	Name        string
	Type        string
	Title       string
	Description string
	// Default is nil when the property declares no default or when the
	// declared default is not a scalar.
	Default *Value
	// Enum lists the allowed values of string enums.
	Enum    []string
	Minimum *float64
	Maximum *float64
}

// Supported reports whether the property type is one of the four primitive
// types the mapper coerces.
func (p Property) Supported() bool {
	switch p.Type {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean:
		return true
	default:
		return false
	}
}

// Object is a parsed flat object schema.
type Object struct {
	Title       string
	Description string
	Properties  []Property
}

// Property looks up a property by name.
func (o Object) Property(name string) (Property, bool) {
	for _, prop := range o.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Names returns the property names in declaration order.
func (o Object) Names() []string {
	names := make([]string, 0, len(o.Properties))
	for _, prop := range o.Properties {
		names = append(names, prop.Name)
	}
	return names
}

// Parse turns a schema document into an Object. It accepts an Object (returned
// as is), a Document (decoded first), or an already decoded mapping. A missing
// properties member yields an empty Object; anything that is not a mapping
// where one is required is a FormatError.
func Parse(doc any) (Object, error) {
	switch v := doc.(type) {
	case Object:
		return v, nil
	case *Object:
		if v == nil {
			return Object{}, FormatError{Path: "#", Message: "document is nil"}
		}
		return *v, nil
	case Document:
		payload, err := Decode(v)
		if err != nil {
			return Object{}, err
		}
		return parseObject(payload, propertyOrder(v))
	case map[string]any:
		return parseObject(v, nil)
	case nil:
		return Object{}, FormatError{Path: "#", Message: "document is nil"}
	default:
		return Object{}, FormatError{Path: "#", Message: fmt.Sprintf("document must be a mapping, got %s", describe(v))}
	}
}

func parseObject(payload map[string]any, order []string) (Object, error) {
	out := Object{
		Title:       strings.TrimSpace(readString(payload, "title")),
		Description: strings.TrimSpace(readString(payload, "description")),
	}

	rawProps, ok := payload["properties"]
	if !ok {
		return out, nil
	}
	props, ok := rawProps.(map[string]any)
	if !ok {
		return Object{}, FormatError{
			Path:    "#/properties",
			Message: fmt.Sprintf("properties must be a mapping, got %s", describe(rawProps)),
		}
	}

	names := orderedNames(props, order)
	out.Properties = make([]Property, 0, len(names))
	for _, name := range names {
		prop, err := parseProperty(name, props[name])
		if err != nil {
			return Object{}, err
		}
		out.Properties = append(out.Properties, prop)
	}
	return out, nil
}

// orderedNames returns the keys of props following order, then any keys order
// missed in sorted order.
func orderedNames(props map[string]any, order []string) []string {
	if len(order) == 0 {
		return sortedKeys(props)
	}
	names := make([]string, 0, len(props))
	seen := make(map[string]struct{}, len(props))
	for _, name := range order {
		if _, ok := props[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, name := range sortedKeys(props) {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

func parseProperty(name string, node any) (Property, error) {
	payload, ok := node.(map[string]any)
	if !ok {
		return Property{}, FormatError{
			Path:    "#/properties/" + escapeJSONPointer(name),
			Message: fmt.Sprintf("property must be a mapping, got %s", describe(node)),
		}
	}

	prop := Property{
		Name:        name,
		Type:        readType(payload),
		Title:       strings.TrimSpace(readString(payload, "title")),
		Description: strings.TrimSpace(readString(payload, "description")),
	}

	if raw, ok := payload["default"]; ok {
		if value, ok := ValueOf(raw); ok {
			prop.Default = &value
		}
	}

	if list, ok := payload["enum"].([]any); ok {
		for _, item := range list {
			if value, ok := ValueOf(item); ok {
				prop.Enum = append(prop.Enum, value.String())
			}
		}
	}

	if value, ok := toFloat(payload["minimum"]); ok {
		prop.Minimum = &value
	}
	if value, ok := toFloat(payload["maximum"]); ok {
		prop.Maximum = &value
	}

	return prop, nil
}

// readType accepts the single string form and the one-element array form
// ("type": ["integer"]) that some generators emit.
func readType(payload map[string]any) string {
	switch v := payload["type"].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		if len(v) == 1 {
			if s, ok := v[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func readString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	str, _ := payload[key].(string)
	return str
}

func toFloat(raw any) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	value, ok := ValueOf(raw)
	if !ok {
		return 0, false
	}
	switch value.Kind() {
	case KindInt:
		i, _ := value.Int()
		return float64(i), true
	case KindFloat:
		f, _ := value.Float()
		return f, true
	default:
		return 0, false
	}
}

func escapeJSONPointer(value string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(value)
}
