package mailgen

import (
	"embed"
	"html"
	"strings"
)

//go:embed assets/preview.css
var embeddedAssets embed.FS

// PreviewStyles returns the default stylesheet for the classes the preview
// renderer emits, so callers can serve a readable preview without shipping
// their own CSS.
func PreviewStyles() string {
	data, err := embeddedAssets.ReadFile("assets/preview.css")
	if err != nil {
		return ""
	}
	return string(data)
}

// PreviewDocument wraps preview markup in a complete standalone HTML page
// with the default stylesheet inlined.
func PreviewDocument(title, markup string) string {
	var builder strings.Builder
	builder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	builder.WriteString(html.EscapeString(title))
	builder.WriteString("</title>\n<style>\n")
	builder.WriteString(PreviewStyles())
	builder.WriteString("</style>\n</head>\n<body class=\"mg-preview\">\n")
	builder.WriteString(markup)
	builder.WriteString("\n</body>\n</html>\n")
	return builder.String()
}
