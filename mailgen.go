// Package mailgen compiles authored email templates: it extracts the
// variable catalog from a section tree, renders an author preview and a
// production server-template from the same tree, validates structure and
// bindings, and transforms externally-fetched collections before they bind
// to list variables.
//
// The root package re-exports the pipeline's main types so callers can use
// a single import; the pkg/ packages remain importable individually.
package mailgen

import (
	"context"

	"github.com/goliatone/go-mailgen/pkg/globals"
	"github.com/goliatone/go-mailgen/pkg/registry"
	"github.com/goliatone/go-mailgen/pkg/section"
	"github.com/goliatone/go-mailgen/pkg/template"
	"github.com/goliatone/go-mailgen/pkg/transform"
	"github.com/goliatone/go-mailgen/pkg/validate"
)

// Section is one node of the authored content tree.
type Section = section.Section

// Kind identifies a section variant.
type Kind = section.Kind

// Template is the authored document: subject plus section tree.
type Template = template.Template

// Result bundles one compilation pass's outputs.
type Result = template.Result

// TemplateVariable is one entry of the derived variable catalog.
type TemplateVariable = registry.TemplateVariable

// Issue is one validation finding.
type Issue = validate.Issue

// GlobalVariable is an externally-populated named value.
type GlobalVariable = globals.Variable

// Transformation is the filter/sort/limit/select pipeline configuration.
type Transformation = transform.Transformation

// Compile runs the full pipeline with default configuration.
func Compile(ctx context.Context, tpl Template, vars globals.Set, values map[string]any) (Result, error) {
	return template.NewCompiler().Compile(ctx, tpl, vars, values)
}

// BuildRegistry derives the variable catalog for a template.
func BuildRegistry(tpl Template) []TemplateVariable {
	return registry.Build(tpl.Subject, tpl.Header, tpl.Sections, tpl.Footer)
}

// Validate runs the full rule set over a template.
func Validate(tpl Template) []Issue {
	return validate.Validate(tpl.Name, tpl.Subject, tpl.Header, tpl.Sections, tpl.Footer)
}
