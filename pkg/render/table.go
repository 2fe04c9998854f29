package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-mailgen/pkg/section"
)

// writeFallbackTable emits the minimal safe table used when a payload is
// missing or malformed. Rendering never fails on bad table data.
func writeFallbackTable(builder *strings.Builder) {
	builder.WriteString("<table><tbody><tr><td></td></tr></tbody></table>")
}

// writeFallbackList is the list counterpart of writeFallbackTable.
func writeFallbackList(builder *strings.Builder) {
	builder.WriteString("<ul><li></li></ul>")
}

// placement resolves the effective header placement: explicit wins, headers
// present default to first-row, otherwise none.
func placement(table section.TableData) section.HeaderPlacement {
	switch table.HeaderPlacement {
	case section.HeaderFirstRow, section.HeaderFirstColumn, section.HeaderNone:
		return table.HeaderPlacement
	}
	if len(table.Headers) > 0 {
		return section.HeaderFirstRow
	}
	return section.HeaderNone
}

func (r *Renderer) previewTable(builder *strings.Builder, s *section.Section, table section.TableData, values map[string]any) {
	where := placement(table)

	builder.WriteString(`<table class="mg-table"`)
	writeStyleAttr(builder, s.Styles)
	builder.WriteString(">")

	if where == section.HeaderFirstRow && len(table.Headers) > 0 {
		builder.WriteString("<thead><tr>")
		for _, header := range table.Headers {
			builder.WriteString("<th>")
			builder.WriteString(escape(substitute(header, s, values)))
			builder.WriteString("</th>")
		}
		builder.WriteString("</tr></thead>")
	}

	builder.WriteString("<tbody>")
	for rowIdx, row := range table.Rows {
		builder.WriteString("<tr>")
		if where == section.HeaderFirstColumn {
			builder.WriteString("<th>")
			if rowIdx < len(table.Headers) {
				builder.WriteString(escape(substitute(table.Headers[rowIdx], s, values)))
			}
			builder.WriteString("</th>")
		}
		for colIdx, cell := range row {
			if table.Covered(rowIdx, colIdx) {
				continue
			}
			builder.WriteString("<td")
			writeSpanAttrs(builder, table, rowIdx, colIdx)
			builder.WriteString(">")
			builder.WriteString(r.clean(substitute(cell, s, values)))
			builder.WriteString("</td>")
		}
		builder.WriteString("</tr>")
	}
	builder.WriteString("</tbody></table>")
}

func writeSpanAttrs(builder *strings.Builder, table section.TableData, row, col int) {
	merge, ok := table.MergeAt(row, col)
	if !ok {
		return
	}
	if merge.RowSpan > 1 {
		builder.WriteString(` rowspan="`)
		builder.WriteString(strconv.Itoa(merge.RowSpan))
		builder.WriteString(`"`)
	}
	if merge.ColSpan > 1 {
		builder.WriteString(` colspan="`)
		builder.WriteString(strconv.Itoa(merge.ColSpan))
		builder.WriteString(`"`)
	}
}

// columnFields names the row fields production loop bodies interpolate:
// header-derived identifiers when headers exist, positional col<i> names
// otherwise.
func columnFields(table section.TableData) []string {
	columns := 0
	for _, row := range table.Rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		columns = len(table.Headers)
	}

	fields := make([]string, columns)
	for i := range fields {
		if placement(table) == section.HeaderFirstRow && i < len(table.Headers) {
			if name := fieldName(table.Headers[i]); name != "" {
				fields[i] = name
				continue
			}
		}
		fields[i] = "col" + strconv.Itoa(i)
	}
	return fields
}

// fieldName sanitises a header caption into an identifier-safe key path
// segment.
func fieldName(header string) string {
	var out strings.Builder
	out.Grow(len(header))
	for _, r := range strings.TrimSpace(header) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			out.WriteRune(r - 'A' + 'a')
		case r == ' ', r == '-':
			out.WriteByte('_')
		}
	}
	name := out.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return ""
	}
	return name
}
