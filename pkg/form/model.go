package form

import (
	"strconv"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Widget names the control used for a field.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetNumber   Widget = "number"
	WidgetCheckbox Widget = "checkbox"
	WidgetSelect   Widget = "select"
)

// Options mirror the layout switches of the form generator.
type Options struct {
	ShowTitle       bool
	ShowDescription bool
	Compact         bool
	CardWrapper     bool
	// Labeler overrides DefaultLabeler for properties without a title.
	Labeler func(string) string
}

// DefaultOptions shows the schema title and description inside a card.
func DefaultOptions() Options {
	return Options{
		ShowTitle:       true,
		ShowDescription: true,
		CardWrapper:     true,
	}
}

// Option is a selectable value of a select widget.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Field describes one rendered control. Struct fields are tagged so template
// engines that work on JSON-shaped data see stable names.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Widget      Widget   `json:"widget"`
	InputType   string   `json:"input_type"`
	Step        string   `json:"step,omitempty"`
	Min         string   `json:"min,omitempty"`
	Max         string   `json:"max,omitempty"`
	Value       string   `json:"value"`
	HasValue    bool     `json:"has_value"`
	Checked     bool     `json:"checked"`
	Options     []Option `json:"options,omitempty"`
}

// Model is the renderer input for a whole form.
type Model struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	Compact     bool    `json:"compact"`
	CardWrapper bool    `json:"card_wrapper"`
}

// Build creates one field per property, in schema order. values prefill the
// controls; a property missing from values renders empty (or unchecked).
func Build(obj schema.Object, values schema.Values, opts Options) Model {
	labeler := opts.Labeler
	if labeler == nil {
		labeler = DefaultLabeler
	}

	model := Model{
		Fields:      make([]Field, 0, len(obj.Properties)),
		Compact:     opts.Compact,
		CardWrapper: opts.CardWrapper,
	}
	if opts.ShowTitle {
		model.Title = obj.Title
	}
	if opts.ShowDescription {
		model.Description = obj.Description
	}

	for _, prop := range obj.Properties {
		model.Fields = append(model.Fields, buildField(prop, values, labeler))
	}
	return model
}

func buildField(prop schema.Property, values schema.Values, labeler func(string) string) Field {
	field := Field{
		Name:        prop.Name,
		Type:        prop.Type,
		Label:       prop.Title,
		Description: prop.Description,
	}
	if field.Label == "" {
		field.Label = labeler(prop.Name)
	}

	value, hasValue := values[prop.Name]
	field.HasValue = hasValue
	if hasValue {
		field.Value = value.String()
	}

	switch {
	case prop.Type == schema.TypeBoolean:
		field.Widget = WidgetCheckbox
		field.InputType = "checkbox"
		field.Value = ""
		if b, ok := value.Bool(); ok && hasValue {
			field.Checked = b
		}
	case len(prop.Enum) > 0:
		field.Widget = WidgetSelect
		for _, item := range prop.Enum {
			field.Options = append(field.Options, Option{
				Value:    item,
				Label:    item,
				Selected: hasValue && item == field.Value,
			})
		}
	case prop.Type == schema.TypeInteger:
		field.Widget = WidgetNumber
		field.InputType = "number"
		field.Step = "1"
	case prop.Type == schema.TypeNumber:
		field.Widget = WidgetNumber
		field.InputType = "number"
		field.Step = "any"
	default:
		field.Widget = WidgetText
		field.InputType = "text"
	}

	if field.Widget == WidgetNumber {
		field.Min = formatBound(prop.Minimum)
		field.Max = formatBound(prop.Maximum)
	}
	return field
}

func formatBound(bound *float64) string {
	if bound == nil {
		return ""
	}
	return strconv.FormatFloat(*bound, 'f', -1, 64)
}
