package template

import (
	"context"
	"errors"

	"github.com/goliatone/go-mailgen/pkg/globals"
	"github.com/goliatone/go-mailgen/pkg/registry"
	"github.com/goliatone/go-mailgen/pkg/render"
	"github.com/goliatone/go-mailgen/pkg/section"
	"github.com/goliatone/go-mailgen/pkg/transform"
	"github.com/goliatone/go-mailgen/pkg/validate"
)

// Result is everything one compilation pass produces.
type Result struct {
	// Registry is the deduplicated variable catalog in display order.
	Registry []registry.TemplateVariable
	// Preview is the substituted author-facing markup.
	Preview string
	// Production is the server-template markup with loop directives.
	Production string
	// Issues is the full validation report, warnings included.
	Issues []validate.Issue
}

// Blocking reports whether any issue prevents saving.
func (r Result) Blocking() bool {
	for _, issue := range r.Issues {
		if issue.Blocking() {
			return true
		}
	}
	return false
}

// Option customises a Compiler.
type Option func(*Compiler)

// WithRenderer replaces the renderer used for both materialisations.
func WithRenderer(r *render.Renderer) Option {
	return func(c *Compiler) {
		c.renderer = r
	}
}

// WithTransformations installs per-variable transformation presets, keyed
// by global variable name. A preset runs over the variable's raw fetch
// snapshot before resolution sees it.
func WithTransformations(doc transform.Document) Option {
	return func(c *Compiler) {
		c.presets = doc
	}
}

// Compiler runs the full pipeline: transform integration payloads, resolve
// globals, derive the variable catalog, render both materialisations and
// validate. Compilation is deterministic and idempotent: compiling an
// unchanged template twice yields byte-identical output.
type Compiler struct {
	renderer *render.Renderer
	presets  transform.Document
}

// NewCompiler builds a Compiler with the default renderer.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{renderer: render.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile runs the pipeline. values carries runtime overrides injected into
// the preview; pass nil to render with the authored defaults.
func (c *Compiler) Compile(ctx context.Context, tpl Template, vars globals.Set, values map[string]any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if tpl.Header.Kind != section.KindHeader {
		return Result{}, errors.New("template compiler: header section is required")
	}
	if tpl.Footer.Kind != section.KindFooter {
		return Result{}, errors.New("template compiler: footer section is required")
	}

	resolvedVars := c.applyTransformations(vars)
	resolved := resolveTemplate(tpl.clone(), resolvedVars)

	result := Result{
		Registry: registry.Build(resolved.Subject, resolved.Header, resolved.Sections, resolved.Footer),
		Issues:   validate.Validate(resolved.Name, resolved.Subject, resolved.Header, resolved.Sections, resolved.Footer),
	}

	tree := fullTree(resolved)
	result.Preview = c.renderer.Preview(tree, values)
	result.Production = c.renderer.Production(tree)

	return result, nil
}

// applyTransformations runs each configured preset over its variable's
// pre-transformation snapshot, so re-compiles start from the same raw data.
func (c *Compiler) applyTransformations(vars globals.Set) globals.Set {
	if len(vars) == 0 {
		return vars
	}
	out := make(globals.Set, len(vars))
	for name, variable := range vars {
		if preset, ok := c.presets.For(name); ok && !preset.IsZero() {
			raw := variable.RawData
			if raw == nil {
				raw = variable.Data
			}
			variable.RawData = raw
			variable.Data = transform.Apply(raw, preset)
		}
		out[name] = variable
	}
	return out
}

// resolveTemplate substitutes global variables into every placeholder site:
// the subject, each section's content, and any string-typed variable
// binding. Placeholders that reference no global stay verbatim for the
// registry and renderer to handle.
func resolveTemplate(tpl Template, vars globals.Set) Template {
	if len(vars) == 0 {
		return tpl
	}

	tpl.Subject = globals.Resolve(tpl.Subject, vars)

	resolve := func(s *section.Section, _ int) bool {
		s.Content = globals.Resolve(s.Content, vars)
		for key, value := range s.Variables {
			if text, ok := value.(string); ok {
				s.Variables[key] = globals.Resolve(text, vars)
			}
		}
		return true
	}

	header := []section.Section{tpl.Header}
	section.Walk(header, resolve)
	tpl.Header = header[0]

	section.Walk(tpl.Sections, resolve)

	footer := []section.Section{tpl.Footer}
	section.Walk(footer, resolve)
	tpl.Footer = footer[0]

	return tpl
}

func fullTree(tpl Template) []section.Section {
	tree := make([]section.Section, 0, len(tpl.Sections)+2)
	tree = append(tree, tpl.Header)
	tree = append(tree, tpl.Sections...)
	tree = append(tree, tpl.Footer)
	return tree
}
