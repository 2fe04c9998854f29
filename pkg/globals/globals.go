// Package globals holds externally-populated named values and resolves
// placeholder references against them. A global variable is created when an
// integration fetch completes and is overwritten wholesale on re-fetch; the
// pipeline never mutates one field-by-field.
package globals

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/goliatone/go-mailgen/pkg/placeholder"
)

// Variable is a named value populated from an external data fetch,
// resolvable from any section regardless of tree position.
type Variable struct {
	Name string `json:"name"`
	// Data is the post-transformation payload placeholders resolve against.
	Data json.RawMessage `json:"data"`
	// DataType tags the payload shape ("object", "array", "string", ...).
	DataType string `json:"dataType,omitempty"`
	// Schema maps flattened field paths to primitive type names for
	// author-facing autocomplete.
	Schema map[string]string `json:"schema,omitempty"`
	// RawData preserves the pre-transformation snapshot of the fetch.
	RawData json.RawMessage `json:"rawData,omitempty"`
}

// Set is the collection of globals visible to one template, keyed by name.
type Set map[string]Variable

// NewVariable wraps a fetched payload, tagging its JSON shape.
func NewVariable(name string, data json.RawMessage) Variable {
	return Variable{Name: name, Data: data, DataType: dataType(data)}
}

func dataType(data json.RawMessage) string {
	parsed := gjson.ParseBytes(data)
	switch {
	case parsed.IsArray():
		return "array"
	case parsed.IsObject():
		return "object"
	case parsed.Type == gjson.String:
		return "string"
	case parsed.Type == gjson.Number:
		return "number"
	case parsed.Type == gjson.True, parsed.Type == gjson.False:
		return "boolean"
	default:
		return "null"
	}
}

// Resolve substitutes every {{name}} / {{name.path}} occurrence whose base
// name exists in vars. A pathless reference yields the whole stored value,
// JSON-serialized when it is an object or array. A dotted reference walks
// the payload one segment at a time; a missing name or a path resolving to
// null leaves the placeholder text untouched, so "not a global" and "not
// yet populated" are both no-ops.
func Resolve(text string, vars Set) string {
	if text == "" || len(vars) == 0 {
		return text
	}
	return placeholder.Replace(text, func(ref placeholder.Ref) (string, bool) {
		variable, ok := vars[ref.Name]
		if !ok || len(variable.Data) == 0 {
			return "", false
		}
		if ref.Path == "" {
			return Stringify(gjson.ParseBytes(variable.Data)), true
		}
		value := gjson.GetBytes(variable.Data, ref.Path)
		if !value.Exists() || value.Type == gjson.Null {
			return "", false
		}
		return Stringify(value), true
	})
}

// Stringify renders a resolved JSON value for substitution: objects and
// arrays keep their JSON encoding, scalars use their plain string form.
func Stringify(value gjson.Result) string {
	if value.IsObject() || value.IsArray() {
		return value.Raw
	}
	return value.String()
}
