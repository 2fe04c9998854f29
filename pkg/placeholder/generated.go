package placeholder

import "strings"

// Generated-name prefixes used by the production renderer when it binds a
// loop directive to a collection the backend supplies at send time.
const (
	ItemsPrefix        = "items"
	LabelPrefix        = "label"
	TableRowsPrefix    = "tableRows"
	TableHeadersPrefix = "tableHeaders"
)

const generatedSuffixLen = 8

// GeneratedName derives a collision-resistant collection variable name from
// a section id. The result is a pure function of the id so production
// output stays byte-identical across re-renders of an unchanged tree.
func GeneratedName(prefix, sectionID string) string {
	var sanitized strings.Builder
	sanitized.Grow(len(sectionID))
	for _, r := range sectionID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sanitized.WriteRune(r)
		}
	}

	suffix := sanitized.String()
	if len(suffix) > generatedSuffixLen {
		suffix = suffix[len(suffix)-generatedSuffixLen:]
	}
	if suffix == "" {
		suffix = strings.Repeat("0", generatedSuffixLen)
	}
	return prefix + "_" + suffix
}
