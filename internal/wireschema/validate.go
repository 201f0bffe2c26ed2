// Package wireschema validates JSON documents against schemas reflected from
// Go model types.
//
// encoding/json tolerates missing keys, nulls and unknown enum strings. The
// CHZZK API embeds several documents as JSON strings, and a decode must fail
// when such a document does not match its model, so every embedded document
// is checked here before it is unmarshaled.
package wireschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	reflector "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validator validates JSON data against a schema derived from a Go type.
type Validator struct {
	name   string
	schema *jsonschema.Schema
}

// newReflector returns the reflector used for every model. Fields without
// omitempty are required, pointers tagged `jsonschema:"nullable"` accept null,
// and unknown keys are allowed because the upstream API adds fields freely.
func newReflector() *reflector.Reflector {
	return &reflector.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
}

// New reflects a schema from the type of model and compiles it.
// The name is used as the schema resource location and in error messages.
func New(name string, model any) (*Validator, error) {
	schema := newReflector().Reflect(model)
	return compileSchema(name, schema)
}

// MustNew is like New but panics on error.
func MustNew(name string, model any) *Validator {
	v, err := New(name, model)
	if err != nil {
		panic(err)
	}
	return v
}

// compileSchema compiles a reflected schema into a validator.
func compileSchema(name string, schema *reflector.Schema) (*Validator, error) {
	// Convert to JSON and back to get a clean map[string]any
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema %s: %w", name, err)
	}

	var schemaValue any
	if err := json.Unmarshal(schemaJSON, &schemaValue); err != nil {
		return nil, fmt.Errorf("unmarshaling schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()

	loc := name + ".json"
	if err := compiler.AddResource(loc, schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource %s: %w", name, err)
	}

	compiled, err := compiler.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}

	return &Validator{name: name, schema: compiled}, nil
}

// Name returns the name the validator was created with.
func (v *Validator) Name() string {
	return v.name
}

// Validate parses data and validates it against the schema.
// Malformed JSON and schema violations are both reported as *Error.
func (v *Validator) Validate(data []byte) error {
	value, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return &Error{Schema: v.name, Problems: []string{fmt.Sprintf("invalid JSON: %s", err.Error())}}
	}
	return v.ValidateValue(value)
}

// ValidateValue validates an already-parsed value against the schema.
func (v *Validator) ValidateValue(value any) error {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}
	return &Error{Schema: v.name, Problems: extractValidationErrors(err)}
}

// Error describes why a document did not match its schema.
type Error struct {
	Schema   string
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(e.Problems, "; "))
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		if problems := extractDetailedErrors(validationErr); len(problems) > 0 {
			return problems
		}
	}
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens a ValidationError into "path: message" lines,
// deduplicated and ordered by instance path.
func extractDetailedErrors(err *jsonschema.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for path := range errorsByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}

	return result
}

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
