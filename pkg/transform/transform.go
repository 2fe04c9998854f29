// Package transform applies a declarative filter/sort/limit/select pipeline
// to an array-shaped external payload before it becomes a list variable.
// Every stage is pure; non-array payloads pass through unchanged.
package transform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Operator names one of the supported filter comparisons.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
)

// Logic selects how multiple filter conditions combine.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Order selects the sort direction; ascending unless OrderDesc.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Filter evaluates one named (dot-path) field against a string value.
type Filter struct {
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// FieldMapping renames a source field on output. Disabled mappings are
// carried in the document but have no effect.
type FieldMapping struct {
	SourceField string `json:"sourceField" yaml:"sourceField"`
	TargetField string `json:"targetField" yaml:"targetField"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

// Transformation is the configuration attached to one integration.
type Transformation struct {
	Filters       []Filter       `json:"filters,omitempty" yaml:"filters,omitempty"`
	FilterLogic   Logic          `json:"filterLogic,omitempty" yaml:"filterLogic,omitempty"`
	SortField     string         `json:"sortField,omitempty" yaml:"sortField,omitempty"`
	SortOrder     Order          `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
	Limit         int            `json:"limit,omitempty" yaml:"limit,omitempty"`
	SelectFields  []string       `json:"selectFields,omitempty" yaml:"selectFields,omitempty"`
	FieldMappings []FieldMapping `json:"fieldMappings,omitempty" yaml:"fieldMappings,omitempty"`
}

// IsZero reports whether the transformation would leave any payload
// untouched.
func (t Transformation) IsZero() bool {
	return len(t.Filters) == 0 && t.SortField == "" && t.Limit <= 0 &&
		len(t.SelectFields) == 0 && len(t.FieldMappings) == 0
}

// Apply runs the pipeline over data in its fixed stage order:
// filter, then sort, then limit, then select/rename. Non-array input is
// returned unchanged. Apply never fails; malformed items simply fail their
// filter conditions.
func Apply(data []byte, t Transformation) []byte {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return data
	}

	items := parsed.Array()

	if len(t.Filters) > 0 {
		items = filterItems(items, t.Filters, t.FilterLogic)
	}
	if strings.TrimSpace(t.SortField) != "" {
		items = sortItems(items, t.SortField, t.SortOrder)
	}
	if t.Limit > 0 && len(items) > t.Limit {
		items = items[:t.Limit]
	}
	return projectItems(items, t.SelectFields, t.FieldMappings)
}

func filterItems(items []gjson.Result, filters []Filter, logic Logic) []gjson.Result {
	kept := make([]gjson.Result, 0, len(items))
	for _, item := range items {
		if matches(item, filters, logic) {
			kept = append(kept, item)
		}
	}
	return kept
}

func matches(item gjson.Result, filters []Filter, logic Logic) bool {
	if logic == LogicOr {
		for _, filter := range filters {
			if evaluate(item, filter) {
				return true
			}
		}
		return false
	}
	for _, filter := range filters {
		if !evaluate(item, filter) {
			return false
		}
	}
	return true
}

func evaluate(item gjson.Result, filter Filter) bool {
	field := item.Get(filter.Field)

	switch filter.Operator {
	case OpIsEmpty:
		return isEmpty(field)
	case OpIsNotEmpty:
		return !isEmpty(field)
	}

	actual := field.String()
	expected := filter.Value

	switch filter.Operator {
	case OpEquals:
		return strings.EqualFold(actual, expected)
	case OpNotEquals:
		return !strings.EqualFold(actual, expected)
	case OpContains:
		return strings.Contains(strings.ToLower(actual), strings.ToLower(expected))
	case OpNotContains:
		return !strings.Contains(strings.ToLower(actual), strings.ToLower(expected))
	case OpGreaterThan, OpLessThan:
		left, okLeft := toNumber(actual)
		right, okRight := toNumber(expected)
		if !okLeft || !okRight {
			return false
		}
		if filter.Operator == OpGreaterThan {
			return left > right
		}
		return left < right
	default:
		return false
	}
}

func isEmpty(field gjson.Result) bool {
	if !field.Exists() || field.Type == gjson.Null {
		return true
	}
	return field.Type == gjson.String && field.String() == ""
}

func toNumber(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// sortItems orders by a single field using a locale-aware, numeric-
// sensitive comparison ("item2" sorts before "item10"). The sort is stable
// so items with an absent field keep their relative order.
func sortItems(items []gjson.Result, field string, order Order) []gjson.Result {
	sorted := make([]gjson.Result, len(items))
	copy(sorted, items)

	collator := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(sorted, func(i, j int) bool {
		left := sorted[i].Get(field)
		right := sorted[j].Get(field)
		if !left.Exists() && !right.Exists() {
			return false
		}
		cmp := collator.CompareString(left.String(), right.String())
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

// projectItems applies select/rename: an empty select list keeps all of the
// first item's own fields; renames only affect enabled mappings and only
// change output key names, never which fields are selected.
func projectItems(items []gjson.Result, selectFields []string, mappings []FieldMapping) []byte {
	if len(items) == 0 {
		return []byte("[]")
	}

	fields := selectFields
	if len(fields) == 0 {
		items[0].ForEach(func(key, _ gjson.Result) bool {
			fields = append(fields, key.String())
			return true
		})
	}

	renames := make(map[string]string, len(mappings))
	for _, mapping := range mappings {
		if mapping.Enabled && mapping.SourceField != "" && mapping.TargetField != "" {
			renames[mapping.SourceField] = mapping.TargetField
		}
	}

	out := []byte("[]")
	for _, item := range items {
		obj := []byte("{}")
		for _, field := range fields {
			value := item.Get(field)
			if !value.Exists() {
				continue
			}
			target := field
			if renamed, ok := renames[field]; ok {
				target = renamed
			}
			obj, _ = sjson.SetRawBytes(obj, escapePath(target), []byte(value.Raw))
		}
		out, _ = sjson.SetRawBytes(out, "-1", obj)
	}
	return out
}

// escapePath keeps dotted target names as literal keys instead of nested
// paths when written with sjson.
func escapePath(field string) string {
	return strings.ReplaceAll(field, ".", `\.`)
}
