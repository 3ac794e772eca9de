package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Decode parses the document payload into a generic tree. JSON numbers are
// kept as json.Number so integer defaults survive without a float round trip.
// Syntax errors are reported as ParseError; a payload whose top level is not
// a mapping is a FormatError.
func Decode(doc Document) (map[string]any, error) {
	raw := bytes.TrimSpace(doc.raw)
	if len(raw) == 0 {
		return nil, ParseError{Location: doc.Location(), Err: errors.New("document is empty")}
	}

	var (
		payload any
		err     error
	)
	if doc.IsYAML() {
		payload, err = decodeYAML(raw)
	} else {
		payload, err = decodeJSON(raw)
	}
	if err != nil {
		return nil, ParseError{Location: doc.Location(), Err: err}
	}

	root, ok := payload.(map[string]any)
	if !ok {
		return nil, FormatError{Path: "#", Message: fmt.Sprintf("document must be a mapping, got %s", describe(payload))}
	}
	return root, nil
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func decodeYAML(raw []byte) (any, error) {
	var payload any
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return normalizeYAML(payload), nil
}

// normalizeYAML rewrites map[any]any nodes, which yaml.v3 still emits for
// non-string keys, into map[string]any.
func normalizeYAML(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			v[key] = normalizeYAML(value)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = normalizeYAML(value)
		}
		return out
	case []any:
		for i, value := range v {
			v[i] = normalizeYAML(value)
		}
		return v
	default:
		return v
	}
}

// propertyOrder returns the declaration order of the top-level properties
// member. It is best effort: any failure yields nil and callers fall back to
// sorted names.
func propertyOrder(doc Document) []string {
	raw := bytes.TrimSpace(doc.raw)
	if len(raw) == 0 {
		return nil
	}
	if doc.IsYAML() {
		return yamlPropertyOrder(raw)
	}
	order, err := jsonPropertyOrder(raw)
	if err != nil {
		return nil
	}
	return order
}

func jsonPropertyOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok == json.Delim('}') {
			return nil, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if key != "properties" {
			if err := skipJSONValue(dec); err != nil {
				return nil, err
			}
			continue
		}
		return jsonObjectKeys(dec)
	}
}

func jsonObjectKeys(dec *json.Decoder) ([]string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var keys []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok == json.Delim('}') {
			return keys, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		if err := skipJSONValue(dec); err != nil {
			return nil, err
		}
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

func skipJSONValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}

func yamlPropertyOrder(raw []byte) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value != "properties" {
			continue
		}
		props := top.Content[i+1]
		if props.Kind != yaml.MappingNode {
			return nil
		}
		keys := make([]string, 0, len(props.Content)/2)
		for j := 0; j+1 < len(props.Content); j += 2 {
			keys = append(keys, props.Content[j].Value)
		}
		return keys
	}
	return nil
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", value)
	}
}
