package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-mailgen/pkg/placeholder"
	"github.com/goliatone/go-mailgen/pkg/section"
)

// directive emits a value-interpolation directive for a dotted reference.
// The emitted syntax is a compatibility contract with the backend template
// engine and must stay byte-stable.
func directive(ref string) string {
	return `<span data-expression="value of ` + ref + `"></span>`
}

// directives rewrites every author-facing placeholder in text into its
// production counterpart. No literal value is ever substituted here; the
// backend binds real values at send time.
func directives(text string) string {
	return placeholder.Replace(text, func(ref placeholder.Ref) (string, bool) {
		return directive(ref.Full()), true
	})
}

func (r *Renderer) productionSection(builder *strings.Builder, s *section.Section, depth int) {
	if s == nil || depth > r.maxDepth {
		return
	}

	switch s.Kind {
	case section.KindContainer:
		builder.WriteString(`<div class="mg-group"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		for i := range s.Children {
			r.productionSection(builder, &s.Children[i], depth+1)
		}
		builder.WriteString("</div>")

	case section.KindLayoutTable:
		builder.WriteString(`<table class="mg-layout"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString("><tbody>")
		for _, row := range s.Grid {
			builder.WriteString("<tr>")
			for _, cell := range row {
				builder.WriteString("<td>")
				for i := range cell.Sections {
					r.productionSection(builder, &cell.Sections[i], depth+1)
				}
				builder.WriteString("</td>")
			}
			builder.WriteString("</tr>")
		}
		builder.WriteString("</tbody></table>")

	case section.KindHeader, section.KindFooter:
		builder.WriteString(`<div class="mg-`)
		builder.WriteString(string(s.Kind))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(directives(s.Content))
		builder.WriteString("</div>")

	case section.KindHeading1, section.KindHeading2, section.KindHeading3,
		section.KindHeading4, section.KindHeading5, section.KindHeading6:
		tag := headingTag(s.Kind)
		builder.WriteString("<")
		builder.WriteString(tag)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(directives(s.Content))
		builder.WriteString("</")
		builder.WriteString(tag)
		builder.WriteString(">")

	case section.KindBulletList, section.KindNumberedList, section.KindCheckList:
		r.productionList(builder, s)

	case section.KindTable:
		table, _ := section.TableDataFrom(s.Variables["tableData"])
		r.productionTable(builder, s, table)

	case section.KindLabeledContent:
		r.productionLabeledContent(builder, s)

	case section.KindImage:
		builder.WriteString(`<img src="`)
		builder.WriteString(escape(s.Content))
		builder.WriteString(`" alt="`)
		builder.WriteString(escape(s.Label()))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")

	case section.KindLink, section.KindButton:
		href, _ := s.Variables["url"].(string)
		class := "mg-link"
		if s.Kind == section.KindButton {
			class = "mg-button"
		}
		builder.WriteString(`<a class="`)
		builder.WriteString(class)
		builder.WriteString(`" href="`)
		builder.WriteString(escape(href))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(directives(s.Content))
		builder.WriteString("</a>")

	case section.KindDivider:
		builder.WriteString("<hr>")

	case section.KindSpacer:
		builder.WriteString("<br>")

	default:
		builder.WriteString(`<div class="mg-`)
		builder.WriteString(string(s.Kind))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(directives(s.Content))
		builder.WriteString("</div>")
	}
}

func (r *Renderer) productionList(builder *strings.Builder, s *section.Section) {
	collection := placeholder.GeneratedName(placeholder.ItemsPrefix, s.ID)

	tag, class := listTag(s.Kind)
	builder.WriteString("<")
	builder.WriteString(tag)
	if class != "" {
		builder.WriteString(` class="`)
		builder.WriteString(class)
		builder.WriteString(`"`)
	}
	writeStyleAttr(builder, s.Styles)
	builder.WriteString(` data-repeat="each item in `)
	builder.WriteString(collection)
	builder.WriteString(`"><li data-expression="value of item.text"></li></`)
	builder.WriteString(tag)
	builder.WriteString(">")
}

func (r *Renderer) productionLabeledContent(builder *strings.Builder, s *section.Section) {
	builder.WriteString(`<div class="mg-labeled"`)
	writeStyleAttr(builder, s.Styles)
	builder.WriteString(">")

	if s.IsLabelEditable {
		builder.WriteString(`<strong data-expression="value of `)
		builder.WriteString(placeholder.GeneratedName(placeholder.LabelPrefix, s.ID))
		builder.WriteString(`"></strong>`)
	} else if label := s.Label(); label != "" {
		builder.WriteString("<strong>")
		builder.WriteString(escape(label))
		builder.WriteString("</strong>")
	}

	switch s.ContentType() {
	case "list":
		builder.WriteString(`<ul data-repeat="each item in `)
		builder.WriteString(placeholder.GeneratedName(placeholder.ItemsPrefix, s.ID))
		builder.WriteString(`"><li data-expression="value of item.text"></li></ul>`)
	case "table":
		table, _ := section.TableDataFrom(s.Variables["tableData"])
		r.productionTable(builder, s, table)
	default:
		content, _ := s.Variables["content"].(string)
		if content == "" {
			content = s.Content
		}
		builder.WriteString(`<div class="mg-labeled-body">`)
		builder.WriteString(directives(content))
		builder.WriteString("</div>")
	}

	builder.WriteString("</div>")
}

// productionTable emits a loop-driven table bound to generated collection
// names. The three header placements produce three distinct directive
// shapes; colSpan merges anchored in the template row are honoured by
// skipping the covered columns entirely.
func (r *Renderer) productionTable(builder *strings.Builder, s *section.Section, table section.TableData) {
	rows := placeholder.GeneratedName(placeholder.TableRowsPrefix, s.ID)
	headers := placeholder.GeneratedName(placeholder.TableHeadersPrefix, s.ID)
	fields := columnFields(table)

	builder.WriteString(`<table class="mg-table"`)
	writeStyleAttr(builder, s.Styles)
	builder.WriteString(">")

	where := placement(table)
	if where == section.HeaderFirstRow {
		builder.WriteString(`<thead><tr data-repeat="each header in `)
		builder.WriteString(headers)
		builder.WriteString(`"><th data-expression="value of header"></th></tr></thead>`)
	}

	builder.WriteString(`<tbody><tr data-repeat="each row in `)
	builder.WriteString(rows)
	builder.WriteString(`">`)
	if where == section.HeaderFirstColumn {
		builder.WriteString(`<th data-expression="value of row.header"></th>`)
	}
	for colIdx, field := range fields {
		if table.Covered(0, colIdx) {
			continue
		}
		builder.WriteString("<td")
		if merge, ok := table.MergeAt(0, colIdx); ok && merge.ColSpan > 1 {
			builder.WriteString(` colspan="`)
			builder.WriteString(strconv.Itoa(merge.ColSpan))
			builder.WriteString(`"`)
		}
		builder.WriteString(` data-expression="value of row.`)
		builder.WriteString(field)
		builder.WriteString(`"></td>`)
	}
	builder.WriteString("</tr></tbody></table>")
}
