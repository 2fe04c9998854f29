package section

import (
	"strings"

	"github.com/google/uuid"
)

// Kind is the closed tag identifying a section variant. Structural kinds
// (container, layout-table, header, footer) carry children or grid cells;
// leaf kinds carry content and bound variables.
type Kind string

const (
	KindHeader         Kind = "header"
	KindFooter         Kind = "footer"
	KindHeading1       Kind = "heading1"
	KindHeading2       Kind = "heading2"
	KindHeading3       Kind = "heading3"
	KindHeading4       Kind = "heading4"
	KindHeading5       Kind = "heading5"
	KindHeading6       Kind = "heading6"
	KindParagraph      Kind = "paragraph"
	KindStaticText     Kind = "static-text"
	KindMixedContent   Kind = "mixed-content"
	KindLabeledContent Kind = "labeled-content"
	KindBulletList     Kind = "bullet-list"
	KindNumberedList   Kind = "numbered-list"
	KindCheckList      Kind = "check-list"
	KindTable          Kind = "table"
	KindLayoutTable    Kind = "layout-table"
	KindContainer      Kind = "container"
	KindImage          Kind = "image"
	KindLink           Kind = "link"
	KindButton         Kind = "button"
	KindDivider        Kind = "divider"
	KindSpacer         Kind = "spacer"
	KindProgramName    Kind = "program-name"
	KindBanner         Kind = "banner"
	KindSignature      Kind = "signature"
)

// SingleUseKinds may appear at most once across the whole tree, nested
// containers included.
var SingleUseKinds = []Kind{KindProgramName, KindBanner}

// Structural metadata keys inside Section.Variables that never name a
// template variable.
var MetadataKeys = []string{"label", "content", "contentType", "listStyle", "items", "tableData"}

// IsMetadataKey reports whether key is structural metadata rather than a
// variable binding.
func IsMetadataKey(key string) bool {
	for _, known := range MetadataKeys {
		if key == known {
			return true
		}
	}
	return false
}

// Styles is the closed set of presentation attributes a section may carry.
// The pipeline treats them as opaque and carries them through untouched.
type Styles struct {
	Color          string `json:"color,omitempty"`
	FontWeight     string `json:"fontWeight,omitempty"`
	TextDecoration string `json:"textDecoration,omitempty"`
	Background     string `json:"background,omitempty"`
	FontSize       string `json:"fontSize,omitempty"`
	Align          string `json:"align,omitempty"`
	Padding        string `json:"padding,omitempty"`
}

// IsZero reports whether no attribute is set.
func (s Styles) IsZero() bool {
	return s == Styles{}
}

// Cell is one slot of a layout-table grid. Cells own their nested sections
// exclusively; two cells never share a section.
type Cell struct {
	Sections []Section `json:"sections,omitempty"`
}

// Section is one node of the authored content tree.
type Section struct {
	ID              string         `json:"id"`
	Kind            Kind           `json:"kind"`
	Content         string         `json:"content,omitempty"`
	Variables       map[string]any `json:"variables,omitempty"`
	Styles          Styles         `json:"styles,omitempty"`
	Children        []Section      `json:"children,omitempty"`
	Grid            [][]Cell       `json:"grid,omitempty"`
	IsLabelEditable bool           `json:"isLabelEditable,omitempty"`
}

// New constructs a section of the given kind with a fresh stable id.
func New(kind Kind) Section {
	return Section{
		ID:        uuid.NewString(),
		Kind:      kind,
		Variables: make(map[string]any),
	}
}

// IsStructural reports whether the section kind carries children instead of
// content.
func (s Section) IsStructural() bool {
	switch s.Kind {
	case KindContainer, KindLayoutTable, KindHeader, KindFooter:
		return true
	default:
		return false
	}
}

// Label returns the author-facing display label when one is bound, falling
// back to the kind tag.
func (s Section) Label() string {
	if raw, ok := s.Variables["label"]; ok {
		if label, ok := raw.(string); ok && strings.TrimSpace(label) != "" {
			return label
		}
	}
	return string(s.Kind)
}

// ContentType returns the declared payload shape of a labeled-content
// section ("text", "list" or "table"); empty for other kinds.
func (s Section) ContentType() string {
	if s.Kind != KindLabeledContent {
		return ""
	}
	if raw, ok := s.Variables["contentType"]; ok {
		if ct, ok := raw.(string); ok {
			return ct
		}
	}
	return "text"
}
