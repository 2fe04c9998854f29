// Package render materialises a section tree twice from the same walk: a
// substituted human-readable preview and a production markup string whose
// list/table content becomes loop directives a server-side template engine
// binds at send time. The two outputs never diverge on the set of variables
// they reference, only on the textual encoding.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"

	"github.com/goliatone/go-mailgen/pkg/placeholder"
	"github.com/goliatone/go-mailgen/pkg/section"
)

// Renderer holds the shared configuration for both materialisations.
type Renderer struct {
	sanitizer *bluemonday.Policy
	maxDepth  int
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithSanitizer replaces the content sanitiser. Passing nil disables
// sanitisation entirely (trusted authoring surfaces).
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		r.sanitizer = policy
	}
}

// WithMaxDepth overrides the traversal depth guard.
func WithMaxDepth(depth int) Option {
	return func(r *Renderer) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// defaultPolicy allows the formatting subset authors can produce plus the
// inline style attribute the style assembler emits.
func defaultPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("style").Globally()
	policy.AllowAttrs("class").Globally()
	return policy
}

// New constructs a Renderer with the default sanitiser and depth guard.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		sanitizer: defaultPolicy(),
		maxDepth:  section.MaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Preview renders the author-facing materialisation: placeholders are
// substituted with the section's bound default or an injected runtime
// override, and unresolved placeholders are left intact so authors can see
// what remains unbound.
func (r *Renderer) Preview(sections []section.Section, values map[string]any) string {
	var builder strings.Builder
	builder.Grow(1024)
	for i := range sections {
		r.previewSection(&builder, &sections[i], values, 0)
	}
	return builder.String()
}

// Production renders the server-template materialisation: scalar
// placeholders become value-interpolation directives and list/table content
// becomes loop directives over deterministically generated collection
// names.
func (r *Renderer) Production(sections []section.Section) string {
	var builder strings.Builder
	builder.Grow(1024)
	for i := range sections {
		r.productionSection(&builder, &sections[i], 0)
	}
	return builder.String()
}

// Preview renders with the default configuration.
func Preview(sections []section.Section, values map[string]any) string {
	return New().Preview(sections, values)
}

// Production renders with the default configuration.
func Production(sections []section.Section) string {
	return New().Production(sections)
}

// substitute resolves every author-facing placeholder in text against the
// runtime overrides and the section's own bindings. Unresolved references
// stay verbatim.
func substitute(text string, s *section.Section, values map[string]any) string {
	return placeholder.Replace(text, func(ref placeholder.Ref) (string, bool) {
		if values != nil {
			if value, ok := values[ref.Name]; ok {
				return resolveValue(value, ref.Path)
			}
		}
		if s != nil && s.Variables != nil {
			if value, ok := s.Variables[ref.Name]; ok {
				return resolveValue(value, ref.Path)
			}
		}
		return "", false
	})
}

// resolveValue stringifies a bound value, walking a dot path into it when
// the reference carries one.
func resolveValue(value any, path string) (string, bool) {
	if value == nil {
		return "", false
	}
	if path == "" {
		return stringifyValue(value)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	nested := gjson.GetBytes(encoded, path)
	if !nested.Exists() || nested.Type == gjson.Null {
		return "", false
	}
	if nested.IsObject() || nested.IsArray() {
		return nested.Raw, true
	}
	return nested.String(), true
}

func stringifyValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool, int, int64, float64, json.Number:
		return fmt.Sprint(v), true
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	}
}

// clean runs author markup through the sanitiser when one is configured.
func (r *Renderer) clean(markup string) string {
	if r.sanitizer == nil {
		return markup
	}
	return r.sanitizer.Sanitize(markup)
}

func escape(text string) string {
	return html.EscapeString(text)
}
