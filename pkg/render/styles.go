package render

import (
	"strings"

	"github.com/goliatone/go-mailgen/pkg/section"
)

// inlineStyle assembles a style attribute value from the present optional
// attributes only, in a fixed order so re-renders stay byte-identical.
// Empty declarations are never emitted.
func inlineStyle(s section.Styles) string {
	if s.IsZero() {
		return ""
	}

	var builder strings.Builder
	builder.Grow(96)

	appendDecl := func(property, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if builder.Len() > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(property)
		builder.WriteString(": ")
		builder.WriteString(value)
	}

	appendDecl("color", s.Color)
	appendDecl("font-weight", s.FontWeight)
	appendDecl("text-decoration", s.TextDecoration)
	appendDecl("background-color", s.Background)
	appendDecl("font-size", s.FontSize)
	appendDecl("text-align", s.Align)
	appendDecl("padding", s.Padding)

	return builder.String()
}

// writeStyleAttr emits a style="" attribute when the section carries any
// presentation attributes.
func writeStyleAttr(builder *strings.Builder, s section.Styles) {
	style := inlineStyle(s)
	if style == "" {
		return
	}
	builder.WriteString(` style="`)
	builder.WriteString(style)
	builder.WriteString(`"`)
}
