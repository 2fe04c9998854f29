package section

import "encoding/json"

// HeaderPlacement selects where a table payload renders its header cells.
type HeaderPlacement string

const (
	HeaderFirstRow    HeaderPlacement = "first-row"
	HeaderFirstColumn HeaderPlacement = "first-column"
	HeaderNone        HeaderPlacement = "none"
)

// ListItem is one entry of a list-typed value. Style is carried through
// untouched like Section.Styles.
type ListItem struct {
	Text  string `json:"text"`
	Style Styles `json:"style,omitempty"`
}

// CellMerge marks the anchor of a merged region inside a table payload.
// Positions covered by the span are skipped entirely during rendering.
type CellMerge struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"rowSpan"`
	ColSpan int `json:"colSpan"`
}

// TableData is the payload bound under the "tableData" variable of a
// table-typed section.
type TableData struct {
	Headers         []string        `json:"headers,omitempty"`
	Rows            [][]string      `json:"rows"`
	HeaderPlacement HeaderPlacement `json:"headerPlacement,omitempty"`
	Merges          []CellMerge     `json:"merges,omitempty"`
}

// MergeAt returns the merge anchored at (row, col), if any.
func (t TableData) MergeAt(row, col int) (CellMerge, bool) {
	for _, merge := range t.Merges {
		if merge.Row == row && merge.Col == col {
			return merge, true
		}
	}
	return CellMerge{}, false
}

// Covered reports whether (row, col) falls inside a merged region without
// being its anchor.
func (t TableData) Covered(row, col int) bool {
	for _, merge := range t.Merges {
		rowSpan := max(merge.RowSpan, 1)
		colSpan := max(merge.ColSpan, 1)
		if row >= merge.Row && row < merge.Row+rowSpan &&
			col >= merge.Col && col < merge.Col+colSpan {
			if row == merge.Row && col == merge.Col {
				continue
			}
			return true
		}
	}
	return false
}

// TableDataFrom coerces a loosely-typed variable value (typically a
// map[string]any decoded from JSON) into a TableData payload. The boolean is
// false when the value has no usable table shape.
func TableDataFrom(value any) (TableData, bool) {
	switch v := value.(type) {
	case nil:
		return TableData{}, false
	case TableData:
		return v, len(v.Rows) > 0 || len(v.Headers) > 0
	case *TableData:
		if v == nil {
			return TableData{}, false
		}
		return *v, len(v.Rows) > 0 || len(v.Headers) > 0
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return TableData{}, false
		}
		var table TableData
		if err := json.Unmarshal(payload, &table); err != nil {
			return TableData{}, false
		}
		return table, len(table.Rows) > 0 || len(table.Headers) > 0
	}
}

// ListItemsFrom coerces a loosely-typed variable value into list items.
// Plain strings and {text, style} objects are both accepted.
func ListItemsFrom(value any) ([]ListItem, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []ListItem:
		return v, len(v) > 0
	case []string:
		items := make([]ListItem, 0, len(v))
		for _, text := range v {
			items = append(items, ListItem{Text: text})
		}
		return items, len(items) > 0
	case []any:
		items := make([]ListItem, 0, len(v))
		for _, entry := range v {
			switch e := entry.(type) {
			case string:
				items = append(items, ListItem{Text: e})
			default:
				payload, err := json.Marshal(e)
				if err != nil {
					continue
				}
				var item ListItem
				if err := json.Unmarshal(payload, &item); err != nil {
					continue
				}
				items = append(items, item)
			}
		}
		return items, len(items) > 0
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		var items []ListItem
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, false
		}
		return items, len(items) > 0
	}
}
