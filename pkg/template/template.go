// Package template ties the pipeline together: a Template document holds
// the authored tree, and a Compiler turns it into the variable catalog, the
// preview and production markup strings, and the validation report.
package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-mailgen/pkg/section"
)

// Template is the persisted document the editor supplies: a subject line
// plus the section tree. Exactly one header and one footer exist per
// template and are immutable in position.
type Template struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Subject  string            `json:"subject"`
	Header   section.Section   `json:"header"`
	Sections []section.Section `json:"sections"`
	Footer   section.Section   `json:"footer"`
}

// New constructs an empty template with a fresh id and the mandatory
// header/footer pair.
func New(name string) Template {
	return Template{
		ID:     uuid.NewString(),
		Name:   name,
		Header: section.New(section.KindHeader),
		Footer: section.New(section.KindFooter),
	}
}

// Parse decodes a template document from JSON bytes.
func Parse(data []byte) (Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Template{}, errors.New("template: document is empty")
	}
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("template: parse document: %w", err)
	}
	if tpl.Header.Kind == "" {
		tpl.Header = section.New(section.KindHeader)
	}
	if tpl.Footer.Kind == "" {
		tpl.Footer = section.New(section.KindFooter)
	}
	return tpl, nil
}

// Encode serialises the template document to JSON.
func (t Template) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("template: encode document: %w", err)
	}
	return data, nil
}

// clone deep-copies the template so compilation can rewrite content without
// mutating the caller's tree.
func (t Template) clone() Template {
	out := t
	out.Header = cloneSection(t.Header)
	out.Footer = cloneSection(t.Footer)
	out.Sections = cloneSections(t.Sections)
	return out
}

func cloneSections(sections []section.Section) []section.Section {
	if sections == nil {
		return nil
	}
	out := make([]section.Section, len(sections))
	for i := range sections {
		out[i] = cloneSection(sections[i])
	}
	return out
}

func cloneSection(s section.Section) section.Section {
	out := s
	if s.Variables != nil {
		out.Variables = make(map[string]any, len(s.Variables))
		for key, value := range s.Variables {
			out.Variables[key] = cloneValue(value)
		}
	}
	out.Children = cloneSections(s.Children)
	if s.Grid != nil {
		out.Grid = make([][]section.Cell, len(s.Grid))
		for i, row := range s.Grid {
			out.Grid[i] = make([]section.Cell, len(row))
			for j, cell := range row {
				out.Grid[i][j] = section.Cell{Sections: cloneSections(cell.Sections)}
			}
		}
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[key] = cloneValue(entry)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = cloneValue(entry)
		}
		return out
	default:
		return v
	}
}
