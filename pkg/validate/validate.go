// Package validate checks a template's structural rules and placeholder
// bindings, returning section-addressable issues. Validation is pure and
// total: anomalies become Issue records, never panics, and the issue order
// is stable (general errors first, then issues grouped per section in
// document order).
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-mailgen/pkg/placeholder"
	"github.com/goliatone/go-mailgen/pkg/section"
)

// Class buckets an issue by the failure taxonomy. Structural and binding
// issues block saving; defaulting issues are advisory.
type Class string

const (
	ClassStructural Class = "structural"
	ClassBinding    Class = "binding"
	ClassDefaulting Class = "defaulting"
)

// Issue is one validation finding. Tree-level findings carry no SectionID
// so the editor can distinguish them from section-addressable ones.
type Issue struct {
	Message     string       `json:"message"`
	SectionID   string       `json:"sectionId,omitempty"`
	SectionKind section.Kind `json:"sectionType,omitempty"`
	Class       Class        `json:"class"`
}

// Blocking reports whether the issue prevents saving the template.
func (i Issue) Blocking() bool {
	return i.Class != ClassDefaulting
}

const (
	nameMinLen    = 3
	nameMaxLen    = 100
	subjectMaxLen = 200
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _\-]*$`)

// Validate runs every rule over the template name, subject and tree. The
// header and footer participate in binding and single-use checks but do not
// satisfy the minimum-content rule.
func Validate(name, subject string, header section.Section, sections []section.Section, footer section.Section) []Issue {
	var issues []Issue

	issues = append(issues, validateName(name)...)
	issues = append(issues, validateSubject(subject)...)

	if len(sections) == 0 {
		issues = append(issues, Issue{
			Message: "template must contain at least one content section",
			Class:   ClassStructural,
		})
	}

	full := make([]section.Section, 0, len(sections)+2)
	full = append(full, header)
	full = append(full, sections...)
	full = append(full, footer)

	issues = append(issues, validateSingleUse(full)...)

	section.Walk(full, func(s *section.Section, _ int) bool {
		issues = append(issues, validateSection(s)...)
		return true
	})

	return issues
}

func validateName(name string) []Issue {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return []Issue{{Message: "template name is required", Class: ClassStructural}}
	case len(trimmed) < nameMinLen:
		return []Issue{{Message: fmt.Sprintf("template name must be at least %d characters", nameMinLen), Class: ClassStructural}}
	case len(trimmed) > nameMaxLen:
		return []Issue{{Message: fmt.Sprintf("template name must be at most %d characters", nameMaxLen), Class: ClassStructural}}
	case !namePattern.MatchString(trimmed):
		return []Issue{{Message: "template name may only contain letters, digits, spaces, dashes and underscores", Class: ClassStructural}}
	}
	return nil
}

func validateSubject(subject string) []Issue {
	var issues []Issue

	trimmed := strings.TrimSpace(subject)
	if trimmed == "" {
		issues = append(issues, Issue{Message: "subject line is required", Class: ClassStructural})
		return issues
	}
	if len(subject) > subjectMaxLen {
		issues = append(issues, Issue{
			Message: fmt.Sprintf("subject line must be at most %d characters", subjectMaxLen),
			Class:   ClassStructural,
		})
	}
	if opens, closes := strings.Count(subject, "{{"), strings.Count(subject, "}}"); opens != closes {
		issues = append(issues, Issue{
			Message: "subject line has unbalanced placeholder braces",
			Class:   ClassStructural,
		})
	}
	if strings.Contains(strings.ReplaceAll(subject, " ", ""), "{{}}") {
		issues = append(issues, Issue{
			Message: "subject line contains an empty placeholder",
			Class:   ClassStructural,
		})
	}
	return issues
}

// validateSingleUse counts single-use kinds across the whole tree, nested
// containers and layout-table cells included.
func validateSingleUse(sections []section.Section) []Issue {
	var issues []Issue
	for _, kind := range section.SingleUseKinds {
		if count := section.CountKind(sections, kind); count > 1 {
			issues = append(issues, Issue{
				Message:     fmt.Sprintf("section kind %q may appear only once per template, found %d", kind, count),
				SectionKind: kind,
				Class:       ClassStructural,
			})
		}
	}
	return issues
}

func validateSection(s *section.Section) []Issue {
	var issues []Issue

	for _, ref := range placeholder.Extract(s.Content) {
		if _, bound := s.Variables[ref.Name]; !bound {
			issues = append(issues, Issue{
				Message:     fmt.Sprintf("placeholder %q is not declared in section variables", ref.Name),
				SectionID:   s.ID,
				SectionKind: s.Kind,
				Class:       ClassBinding,
			})
		}
	}

	for _, key := range variableKeys(s) {
		if emptyValue(s.Variables[key]) {
			issues = append(issues, Issue{
				Message:     fmt.Sprintf("variable %q has no value and will render its default", key),
				SectionID:   s.ID,
				SectionKind: s.Kind,
				Class:       ClassDefaulting,
			})
		}
	}

	if s.Kind == section.KindLabeledContent && s.ContentType() == "list" {
		generated := placeholder.GeneratedName(placeholder.ItemsPrefix, s.ID)
		if !placeholder.IsIdentifier(generated) {
			issues = append(issues, Issue{
				Message:     fmt.Sprintf("list section cannot derive a valid collection variable name from id %q", s.ID),
				SectionID:   s.ID,
				SectionKind: s.Kind,
				Class:       ClassStructural,
			})
		}
	}

	return issues
}

// variableKeys returns the section's variable binding keys in stable order,
// metadata keys excluded except the list/table payload carriers which are
// checked for emptiness.
func variableKeys(s *section.Section) []string {
	var keys []string
	for _, key := range sortedKeys(s.Variables) {
		if section.IsMetadataKey(key) && key != "items" && key != "tableData" {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func emptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []section.ListItem:
		return len(v) == 0
	case map[string]any:
		if len(v) == 0 {
			return true
		}
		if _, hasRows := v["rows"]; hasRows {
			table, _ := section.TableDataFrom(v)
			return len(table.Rows) == 0 && len(table.Headers) == 0
		}
		return false
	case section.TableData:
		return len(v.Rows) == 0 && len(v.Headers) == 0
	default:
		return false
	}
}
