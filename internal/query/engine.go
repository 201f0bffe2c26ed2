// Package query applies jq filters to API results for the CLI's --jq flag.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq expression. It is safe to reuse across inputs.
type Filter struct {
	expr string
	code *gojq.Code
}

// Result contains the values a filter produced.
type Result struct {
	Values []any    `json:"values"`           // Extracted values
	Errors []string `json:"errors,omitempty"` // Per-input runtime errors
}

// Compile parses and compiles a jq expression.
func Compile(expression string) (*Filter, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return &Filter{expr: expression, code: code}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Apply runs the filter against v. v is first converted to its JSON form so
// struct tags decide the field names jq sees.
func (f *Filter) Apply(v any) (*Result, error) {
	input, err := toJQValue(v)
	if err != nil {
		return nil, err
	}

	result := &Result{Values: make([]any, 0)}
	f.run("input", input, result)
	return result, nil
}

// ApplyLabeled runs the filter against each input in order. Labels (channel
// IDs, for instance) prefix runtime errors so the failing input is visible.
func (f *Filter) ApplyLabeled(labels []string, inputs []any) (*Result, error) {
	if len(labels) != len(inputs) {
		return nil, fmt.Errorf("got %d labels for %d inputs", len(labels), len(inputs))
	}

	result := &Result{Values: make([]any, 0)}
	seenErrors := make(map[string]bool)

	for i, v := range inputs {
		input, err := toJQValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", labels[i], err)
		}

		var part Result
		f.run(labels[i], input, &part)
		result.Values = append(result.Values, part.Values...)
		for _, msg := range part.Errors {
			if !seenErrors[msg] {
				seenErrors[msg] = true
				result.Errors = append(result.Errors, msg)
			}
		}
	}
	return result, nil
}

func (f *Filter) run(label string, input any, result *Result) {
	iter := f.code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return
		}
		if err, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, formatJQError(label, err))
			continue
		}
		result.Values = append(result.Values, v)
	}
}

// toJQValue converts v into the plain maps, slices and scalars gojq accepts.
func toJQValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding input for jq: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding input for jq: %w", err)
	}
	return out, nil
}

// formatJQError creates a helpful error message for jq execution errors.
//
// Runtime errors like "cannot iterate over: null" have no typed wrapper in
// gojq, so hints are chosen by message text. Only display output depends on it.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this response)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}
