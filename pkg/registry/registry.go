// Package registry derives the deduplicated, ordered catalog of template
// variables discoverable across a template. The catalog is rebuilt by a
// full re-scan whenever the tree or subject changes; it is never updated
// incrementally.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-mailgen/pkg/placeholder"
	"github.com/goliatone/go-mailgen/pkg/section"
)

// Type classifies a variable for the author-facing panel.
type Type string

const (
	TypeText   Type = "text"
	TypeNumber Type = "number"
	TypeDate   Type = "date"
	TypeEmail  Type = "email"
	TypeURL    Type = "url"
	TypeList   Type = "list"
	TypeTable  Type = "table"
)

// Source records where a variable was first seen. It is used only for
// display ordering; when the same name appears in multiple places the first
// occurrence in priority order wins.
type Source string

const (
	SourceSubject Source = "subject"
	SourceHeader  Source = "header"
	SourceSection Source = "section"
	SourceFooter  Source = "footer"
)

// TemplateVariable is one registry entry produced by extraction. Authors
// never create these directly.
type TemplateVariable struct {
	Name            string  `json:"name"`
	Label           string  `json:"label"`
	Type            Type    `json:"type"`
	DefaultValue    *string `json:"defaultValue"`
	IsRequired      bool    `json:"isRequired"`
	SourceSectionID string  `json:"sourceSectionId,omitempty"`
	Source          Source  `json:"source"`
}

// Build scans the subject and the tree in source-priority order (subject,
// header, top-level sections depth-first, footer) and returns every
// discovered variable exactly once, first occurrence winning. The scan is
// deterministic and pure: calling it twice on unchanged inputs yields
// identical catalogs.
func Build(subject string, header section.Section, sections []section.Section, footer section.Section) []TemplateVariable {
	b := &builder{seen: make(map[string]struct{})}

	for _, ref := range placeholder.Extract(subject) {
		b.add(TemplateVariable{
			Name:       ref.Name,
			Label:      DeriveLabel(ref.Name),
			Type:       TypeText,
			IsRequired: true,
			Source:     SourceSubject,
		})
	}

	b.scanSection(&header, SourceHeader)
	section.Walk(sections, func(s *section.Section, _ int) bool {
		b.scanSection(s, SourceSection)
		return true
	})
	b.scanSection(&footer, SourceFooter)

	return b.out
}

type builder struct {
	out  []TemplateVariable
	seen map[string]struct{}
}

func (b *builder) add(v TemplateVariable) {
	if _, dup := b.seen[v.Name]; dup {
		return
	}
	b.seen[v.Name] = struct{}{}
	b.out = append(b.out, v)
}

func (b *builder) scanSection(s *section.Section, source Source) {
	if s == nil {
		return
	}

	for _, ref := range placeholder.Extract(s.Content) {
		b.add(b.entryFor(s, source, ref.Name))
	}

	if s.Kind == section.KindLabeledContent {
		for _, key := range []string{"label", "content"} {
			if text, ok := s.Variables[key].(string); ok {
				for _, ref := range placeholder.Extract(text) {
					b.add(b.entryFor(s, source, ref.Name))
				}
			}
		}
	}

	for _, key := range sortedKeys(s.Variables) {
		if section.IsMetadataKey(key) {
			continue
		}
		if !placeholder.IsIdentifier(key) {
			continue
		}
		b.add(b.entryFor(s, source, key))
	}
}

func (b *builder) entryFor(s *section.Section, source Source, name string) TemplateVariable {
	return TemplateVariable{
		Name:            name,
		Label:           DeriveLabel(name),
		Type:            inferType(s, name),
		DefaultValue:    defaultFor(s, name),
		SourceSectionID: s.ID,
		Source:          source,
	}
}

// defaultFor serializes the section's own bound value for name: JSON for
// lists and objects, plain stringification otherwise, nil when unset.
func defaultFor(s *section.Section, name string) *string {
	value, ok := s.Variables[name]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case string:
		return &v
	case bool, int, int64, float64, json.Number:
		str := fmt.Sprint(v)
		return &str
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil
		}
		str := string(encoded)
		return &str
	}
}
