package schema

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// RawFormData holds one submitted string per field name. A checkbox field is
// present only when it was checked.
type RawFormData map[string]string

// RawFormDataFromValues keeps the first value submitted for each key.
func RawFormDataFromValues(values url.Values) RawFormData {
	out := make(RawFormData, len(values))
	for key, list := range values {
		if len(list) == 0 {
			out[key] = ""
			continue
		}
		out[key] = list[0]
	}
	return out
}

// RawFormDataFromMap converts a decoded JSON object body into raw form data.
// A boolean false or a null drops the key so JSON clients get the same
// unchecked-checkbox semantics as HTML forms; every other scalar is kept in its
// textual form. Numbers decoded with UseNumber keep the client's exact text,
// including values such as 1e400 that do not fit a float64.
func RawFormDataFromMap(payload map[string]any) RawFormData {
	out := make(RawFormData, len(payload))
	for key, raw := range payload {
		switch v := raw.(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			out[key] = "on"
		case json.Number:
			out[key] = v.String()
		default:
			if value, ok := ValueOf(v); ok {
				out[key] = value.String()
			}
		}
	}
	return out
}

// ExtractDefaults collects every declared default, keyed by property name.
// Properties without a default are omitted. Defaults are copied as declared;
// no coercion to the property type is applied.
func ExtractDefaults(doc any) (Values, error) {
	obj, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	out := make(Values, len(obj.Properties))
	for _, prop := range obj.Properties {
		if prop.Default == nil {
			continue
		}
		out[prop.Name] = *prop.Default
	}
	return out, nil
}

// CoerceSubmission converts raw submitted strings into typed values following
// the schema:
//
//   - boolean properties are always present in the result and are true exactly
//     when their name is a key of raw, whatever the submitted text. This is the
//     HTML checkbox convention and applies to every transport.
//   - integer and number properties are parsed; text that does not parse (or
//     parses to a non-finite number) is kept as the submitted string.
//   - string properties and properties of any other type keep the submitted
//     string.
//
// Non-boolean properties missing from raw, and raw keys that are not schema
// properties, are left out of the result. The only error is a FormatError for
// an unusable schema document.
func CoerceSubmission(doc any, raw RawFormData) (Values, error) {
	values, _, err := CoerceSubmissionReport(doc, raw)
	return values, err
}

// CoerceSubmissionReport behaves like CoerceSubmission and additionally returns
// the names of numeric properties that fell back to their submitted string.
func CoerceSubmissionReport(doc any, raw RawFormData) (Values, []string, error) {
	obj, err := Parse(doc)
	if err != nil {
		return nil, nil, err
	}

	out := make(Values, len(obj.Properties))
	var fallbacks []string
	for _, prop := range obj.Properties {
		text, present := raw[prop.Name]
		if prop.Type == TypeBoolean {
			out[prop.Name] = BoolValue(present)
			continue
		}
		if !present {
			continue
		}

		value, ok := coerce(prop.Type, text)
		if !ok {
			fallbacks = append(fallbacks, prop.Name)
		}
		out[prop.Name] = value
	}
	return out, fallbacks, nil
}

// coerce parses text for numeric types. The second result is false when a
// numeric parse failed and the raw string was kept instead.
func coerce(typ, text string) (Value, bool) {
	switch typ {
	case TypeInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return StringValue(text), false
		}
		return IntValue(i), true
	case TypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return StringValue(text), false
		}
		return FloatValue(f), true
	default:
		return StringValue(text), true
	}
}
