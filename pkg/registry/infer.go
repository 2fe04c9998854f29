package registry

import (
	"sort"
	"strings"

	"github.com/goliatone/go-mailgen/pkg/section"
)

// namePatterns is the fixed inference priority list: earlier entries win
// when a name matches several substrings.
var namePatterns = []struct {
	substrings []string
	varType    Type
}{
	{[]string{"email"}, TypeEmail},
	{[]string{"date", "year"}, TypeDate},
	{[]string{"url", "link"}, TypeURL},
	{[]string{"count", "number", "amount"}, TypeNumber},
}

// inferType resolves a variable's type. An explicit list/table contentType
// on a labeled-content section wins; otherwise the name is matched against
// the fixed substring priority list, defaulting to text.
func inferType(s *section.Section, name string) Type {
	if s != nil && s.Kind == section.KindLabeledContent {
		switch s.ContentType() {
		case "list":
			return TypeList
		case "table":
			return TypeTable
		}
	}

	lower := strings.ToLower(name)
	for _, pattern := range namePatterns {
		for _, sub := range pattern.substrings {
			if strings.Contains(lower, sub) {
				return pattern.varType
			}
		}
	}
	return TypeText
}

// sortedKeys returns map keys in a stable order so registry output does not
// depend on map iteration.
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
