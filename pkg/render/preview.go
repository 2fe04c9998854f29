package render

import (
	"strings"

	"github.com/goliatone/go-mailgen/pkg/section"
)

func (r *Renderer) previewSection(builder *strings.Builder, s *section.Section, values map[string]any, depth int) {
	if s == nil || depth > r.maxDepth {
		return
	}

	switch s.Kind {
	case section.KindContainer:
		builder.WriteString(`<div class="mg-group"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		for i := range s.Children {
			r.previewSection(builder, &s.Children[i], values, depth+1)
		}
		builder.WriteString("</div>")

	case section.KindLayoutTable:
		r.previewLayoutTable(builder, s, values, depth)

	case section.KindHeader, section.KindFooter:
		builder.WriteString(`<div class="mg-`)
		builder.WriteString(string(s.Kind))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(r.clean(substitute(s.Content, s, values)))
		builder.WriteString("</div>")

	case section.KindHeading1, section.KindHeading2, section.KindHeading3,
		section.KindHeading4, section.KindHeading5, section.KindHeading6:
		tag := headingTag(s.Kind)
		builder.WriteString("<")
		builder.WriteString(tag)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(r.clean(substitute(s.Content, s, values)))
		builder.WriteString("</")
		builder.WriteString(tag)
		builder.WriteString(">")

	case section.KindBulletList, section.KindNumberedList, section.KindCheckList:
		r.previewList(builder, s, values)

	case section.KindTable:
		table, ok := section.TableDataFrom(s.Variables["tableData"])
		if !ok {
			writeFallbackTable(builder)
			return
		}
		r.previewTable(builder, s, table, values)

	case section.KindLabeledContent:
		r.previewLabeledContent(builder, s, values)

	case section.KindImage:
		builder.WriteString(`<img src="`)
		builder.WriteString(escape(substitute(s.Content, s, values)))
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
		builder.WriteString(escape(substitute(href, s, values)))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(r.clean(substitute(s.Content, s, values)))
		builder.WriteString("</a>")

	case section.KindDivider:
		builder.WriteString("<hr>")

	case section.KindSpacer:
		builder.WriteString("<br>")

	default:
		// paragraph, static-text, mixed-content, program-name, banner,
		// signature and any future leaf kind render as a styled block.
		builder.WriteString(`<div class="mg-`)
		builder.WriteString(string(s.Kind))
		builder.WriteString(`"`)
		writeStyleAttr(builder, s.Styles)
		builder.WriteString(">")
		builder.WriteString(r.clean(substitute(s.Content, s, values)))
		builder.WriteString("</div>")
	}
}

func headingTag(kind section.Kind) string {
	switch kind {
	case section.KindHeading1:
		return "h1"
	case section.KindHeading2:
		return "h2"
	case section.KindHeading3:
		return "h3"
	case section.KindHeading4:
		return "h4"
	case section.KindHeading5:
		return "h5"
	default:
		return "h6"
	}
}

func listTag(kind section.Kind) (string, string) {
	switch kind {
	case section.KindNumberedList:
		return "ol", ""
	case section.KindCheckList:
		return "ul", "mg-checklist"
	default:
		return "ul", ""
	}
}

func (r *Renderer) previewList(builder *strings.Builder, s *section.Section, values map[string]any) {
	items, ok := section.ListItemsFrom(s.Variables["items"])
	if !ok {
		writeFallbackList(builder)
		return
	}

	tag, class := listTag(s.Kind)
	builder.WriteString("<")
	builder.WriteString(tag)
	if class != "" {
		builder.WriteString(` class="`)
		builder.WriteString(class)
		builder.WriteString(`"`)
	}
	writeStyleAttr(builder, s.Styles)
	builder.WriteString(">")
	for _, item := range items {
		builder.WriteString("<li")
		writeStyleAttr(builder, item.Style)
		builder.WriteString(">")
		builder.WriteString(r.clean(substitute(item.Text, s, values)))
		builder.WriteString("</li>")
	}
	builder.WriteString("</")
	builder.WriteString(tag)
	builder.WriteString(">")
}

func (r *Renderer) previewLabeledContent(builder *strings.Builder, s *section.Section, values map[string]any) {
	builder.WriteString(`<div class="mg-labeled"`)
	writeStyleAttr(builder, s.Styles)
	builder.WriteString(">")

	if label := s.Label(); label != "" {
		builder.WriteString("<strong>")
		builder.WriteString(escape(substitute(label, s, values)))
		builder.WriteString("</strong>")
	}

	switch s.ContentType() {
	case "list":
		items, ok := section.ListItemsFrom(s.Variables["items"])
		if !ok {
			writeFallbackList(builder)
			break
		}
		builder.WriteString("<ul>")
		for _, item := range items {
			builder.WriteString("<li")
			writeStyleAttr(builder, item.Style)
			builder.WriteString(">")
			builder.WriteString(r.clean(substitute(item.Text, s, values)))
			builder.WriteString("</li>")
		}
		builder.WriteString("</ul>")
	case "table":
		table, ok := section.TableDataFrom(s.Variables["tableData"])
		if !ok {
			writeFallbackTable(builder)
			break
		}
		r.previewTable(builder, s, table, values)
	default:
		content, _ := s.Variables["content"].(string)
		if content == "" {
			content = s.Content
		}
		builder.WriteString(`<div class="mg-labeled-body">`)
		builder.WriteString(r.clean(substitute(content, s, values)))
		builder.WriteString("</div>")
	}

	builder.WriteString("</div>")
}

func (r *Renderer) previewLayoutTable(builder *strings.Builder, s *section.Section, values map[string]any, depth int) {
	builder.WriteString(`<table class="mg-layout"`)
	writeStyleAttr(builder, s.Styles)
	builder.WriteString("><tbody>")
	for _, row := range s.Grid {
		builder.WriteString("<tr>")
		for _, cell := range row {
			builder.WriteString("<td>")
			for i := range cell.Sections {
				r.previewSection(builder, &cell.Sections[i], values, depth+1)
			}
			builder.WriteString("</td>")
		}
		builder.WriteString("</tr>")
	}
	builder.WriteString("</tbody></table>")
}
