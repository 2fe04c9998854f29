// Package testsupport holds fixture helpers shared by the package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/goliatone/go-mailgen/pkg/section"
	"github.com/goliatone/go-mailgen/pkg/template"
)

// LoadTemplate reads a template fixture document. Testing helpers fail the
// test on error to keep contract tests concise.
func LoadTemplate(t *testing.T, path string) template.Template {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load template fixture: %v", err)
	}
	tpl, err := template.Parse(data)
	if err != nil {
		t.Fatalf("parse template fixture: %v", err)
	}
	return tpl
}

// MustJSON marshals a value or fails the test.
func MustJSON(t *testing.T, value any) []byte {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal fixture value: %v", err)
	}
	return data
}

// Paragraph builds a leaf section with the given content and bindings,
// using a fixed id so generated names stay stable inside assertions.
func Paragraph(id, content string, variables map[string]any) section.Section {
	if variables == nil {
		variables = map[string]any{}
	}
	return section.Section{
		ID:        id,
		Kind:      section.KindParagraph,
		Content:   content,
		Variables: variables,
	}
}
