// Package prompt fills a schema driven form from the terminal. Answers are
// collected as raw form data so they go through the same coercion as an HTML
// submission.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Options tune the prompts.
type Options struct {
	// StrictNumbers re-asks until numeric fields parse. Off by default so a
	// terminal session behaves like the lenient web form.
	StrictNumbers bool
	PageSize      int
}

// Fill asks one question per field of model. A confirmed boolean is recorded
// as "on"; a declined one is left out, matching an unchecked checkbox.
func Fill(ctx context.Context, driver Driver, model form.Model, opts Options) (schema.RawFormData, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}

	if model.Title != "" {
		if err := driver.Info(ctx, model.Title); err != nil {
			return nil, err
		}
	}

	raw := make(schema.RawFormData, len(model.Fields))
	for _, field := range model.Fields {
		switch field.Widget {
		case form.WidgetCheckbox:
			ok, err := driver.Confirm(ctx, ConfirmConfig{
				Message: field.Label,
				Default: field.Checked,
				Help:    field.Description,
			})
			if err != nil {
				return nil, fmt.Errorf("prompt: %s: %w", field.Name, err)
			}
			if ok {
				raw[field.Name] = "on"
			}
		case form.WidgetSelect:
			options := make([]string, 0, len(field.Options))
			defaultIndex := -1
			for i, option := range field.Options {
				options = append(options, option.Value)
				if option.Selected {
					defaultIndex = i
				}
			}
			idx, err := driver.Select(ctx, SelectConfig{
				Message:      field.Label,
				Options:      options,
				DefaultIndex: defaultIndex,
				Help:         field.Description,
				PageSize:     opts.PageSize,
			})
			if err != nil {
				return nil, fmt.Errorf("prompt: %s: %w", field.Name, err)
			}
			if idx >= 0 && idx < len(options) {
				raw[field.Name] = options[idx]
			}
		default:
			cfg := InputConfig{
				Message: field.Label,
				Default: field.Value,
				Help:    field.Description,
			}
			if opts.StrictNumbers && field.Widget == form.WidgetNumber {
				cfg.Validator = numberValidator(field.Type)
			}
			text, err := driver.Input(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("prompt: %s: %w", field.Name, err)
			}
			raw[field.Name] = text
		}
	}
	return raw, nil
}

func numberValidator(typ string) func(string) error {
	return func(text string) error {
		text = strings.TrimSpace(text)
		var err error
		if typ == schema.TypeInteger {
			_, err = strconv.ParseInt(text, 10, 64)
		} else {
			_, err = strconv.ParseFloat(text, 64)
		}
		if err != nil {
			return fmt.Errorf("%q is not a valid %s", text, typ)
		}
		return nil
	}
}
