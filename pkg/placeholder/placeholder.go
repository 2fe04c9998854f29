// Package placeholder recognises the two surface syntaxes that reference a
// named template variable inside markup strings: the author-facing
// {{name.field.path}} form and the production directive form that carries
// the same reference inside a data attribute. Both forms denote the same
// semantic reference; extraction treats a name found in both within one
// string as a single occurrence.
package placeholder

import (
	"regexp"
	"strings"
)

// Curly matches the author-facing {{name}} / {{name.field.path}} syntax.
// Names follow the identifier grammar [A-Za-z_][A-Za-z0-9_]*; dot paths may
// be arbitrarily deep and segments after the first may be numeric (array
// indexes inside fetched payloads).
var Curly = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*)\s*\}\}`)

// directive matches the production surface forms: a value interpolation
// (`value of name.path`) or a loop binding (`each item in collection`)
// carried inside a data attribute.
var directive = regexp.MustCompile(`data-(?:expression|repeat)="(?:value of ([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*)|each [A-Za-z_][A-Za-z0-9_]* in ([A-Za-z_][A-Za-z0-9_]*))"`)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Ref is one reference to a variable: the base name plus an optional
// dot-separated field path below it.
type Ref struct {
	Name string
	Path string
	Raw  string
}

// Full returns the dotted reference as written (name plus path).
func (r Ref) Full() string {
	if r.Path == "" {
		return r.Name
	}
	return r.Name + "." + r.Path
}

// Extract returns every variable reference in text in order of first
// occurrence, deduplicated by full dotted reference across both surface
// forms.
func Extract(text string) []Ref {
	if text == "" {
		return nil
	}

	var refs []Ref
	seen := make(map[string]struct{})

	appendRef := func(raw, dotted string) {
		if _, dup := seen[dotted]; dup {
			return
		}
		seen[dotted] = struct{}{}
		name, path, _ := strings.Cut(dotted, ".")
		refs = append(refs, Ref{Name: name, Path: path, Raw: raw})
	}

	for _, match := range Curly.FindAllStringSubmatch(text, -1) {
		appendRef(match[0], match[1])
	}
	for _, match := range directive.FindAllStringSubmatch(text, -1) {
		dotted := match[1]
		if dotted == "" {
			dotted = match[2]
		}
		appendRef(match[0], dotted)
	}
	return refs
}

// Names returns the distinct base variable names referenced by text, in
// order of first occurrence.
func Names(text string) []string {
	refs := Extract(text)
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref.Name]; dup {
			continue
		}
		seen[ref.Name] = struct{}{}
		names = append(names, ref.Name)
	}
	return names
}

// Replace rewrites every author-facing occurrence in text through fn. When
// fn reports false the original placeholder text is preserved verbatim so
// unresolved references stay visible.
func Replace(text string, fn func(ref Ref) (string, bool)) string {
	if text == "" {
		return text
	}
	return Curly.ReplaceAllStringFunc(text, func(raw string) string {
		dotted := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "{{"), "}}"))
		name, path, _ := strings.Cut(dotted, ".")
		if out, ok := fn(Ref{Name: name, Path: path, Raw: raw}); ok {
			return out
		}
		return raw
	})
}

// IsIdentifier reports whether name satisfies the variable identifier
// grammar.
func IsIdentifier(name string) bool {
	return identifier.MatchString(name)
}
