// Package integration derives the author-facing autocomplete schema of an
// external data source: a flattened field-path → primitive-type map either
// parsed from the OpenAPI document describing the integration's API or
// inferred from a sample payload when no document exists.
package integration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/tidwall/gjson"
)

// maxFlattenDepth bounds schema flattening; response schemas can be
// self-referential through $ref cycles.
const maxFlattenDepth = 16

// LoadDocument parses an OpenAPI 3 document from raw JSON or YAML bytes.
func LoadDocument(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("integration: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("integration: load document: %w", err)
	}
	return doc, nil
}

// ResponseSchema flattens the success-response schema of the named
// operation into field paths and primitive type names. Array properties
// contribute their element fields under the array's own path so authors can
// complete row-level references.
func ResponseSchema(doc *openapi3.T, operationID string) (map[string]string, error) {
	if doc == nil {
		return nil, errors.New("integration: document is nil")
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("integration: operation %q not found", operationID)
	}

	schema := successSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("integration: operation %q has no JSON success response", operationID)
	}

	fields := make(map[string]string)
	flattenSchema(schema, "", fields, 0)
	if len(fields) == 0 {
		return nil, fmt.Errorf("integration: operation %q response has no fields", operationID)
	}
	return fields, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func successSchema(operation *openapi3.Operation) *openapi3.SchemaRef {
	if operation.Responses == nil {
		return nil
	}
	for _, status := range []string{"200", "201", "default"} {
		ref := operation.Responses.Value(status)
		if ref == nil || ref.Value == nil {
			continue
		}
		if media := ref.Value.Content.Get("application/json"); media != nil && media.Schema != nil {
			return media.Schema
		}
	}
	return nil
}

func flattenSchema(ref *openapi3.SchemaRef, prefix string, dest map[string]string, depth int) {
	if ref == nil || ref.Value == nil || depth > maxFlattenDepth {
		return
	}
	schema := ref.Value

	switch firstType(schema.Type) {
	case "object":
		for name, property := range schema.Properties {
			flattenSchema(property, joinPath(prefix, name), dest, depth+1)
		}
	case "array":
		flattenSchema(schema.Items, prefix, dest, depth+1)
	case "":
		if len(schema.Properties) > 0 {
			for name, property := range schema.Properties {
				flattenSchema(property, joinPath(prefix, name), dest, depth+1)
			}
			return
		}
		if prefix != "" {
			dest[prefix] = "string"
		}
	default:
		if prefix != "" {
			dest[prefix] = firstType(schema.Type)
		}
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// SchemaFromSample infers the flattened schema directly from a fetched JSON
// payload. For arrays the first element is taken as representative.
func SchemaFromSample(data []byte) map[string]string {
	parsed := gjson.ParseBytes(data)
	if parsed.IsArray() {
		elements := parsed.Array()
		if len(elements) == 0 {
			return nil
		}
		parsed = elements[0]
	}

	fields := make(map[string]string)
	inferFields(parsed, "", fields, 0)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func inferFields(value gjson.Result, prefix string, dest map[string]string, depth int) {
	if depth > maxFlattenDepth {
		return
	}

	switch {
	case value.IsObject():
		value.ForEach(func(key, child gjson.Result) bool {
			inferFields(child, joinPath(prefix, key.String()), dest, depth+1)
			return true
		})
	case value.IsArray():
		elements := value.Array()
		if len(elements) > 0 {
			inferFields(elements[0], prefix, dest, depth+1)
		}
	default:
		if prefix == "" {
			return
		}
		switch value.Type {
		case gjson.Number:
			dest[prefix] = "number"
		case gjson.True, gjson.False:
			dest[prefix] = "boolean"
		case gjson.Null:
			dest[prefix] = "null"
		default:
			dest[prefix] = "string"
		}
	}
}

// Paths returns the schema's field paths in stable order for display.
func Paths(schema map[string]string) []string {
	if len(schema) == 0 {
		return nil
	}
	paths := make([]string, 0, len(schema))
	for path := range schema {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func joinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
