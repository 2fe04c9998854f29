package render

import (
	"strings"
	"testing"

	"github.com/goliatone/go-mailgen/pkg/section"
)

func paragraph(id, content string, variables map[string]any) section.Section {
	if variables == nil {
		variables = map[string]any{}
	}
	return section.Section{ID: id, Kind: section.KindParagraph, Content: content, Variables: variables}
}

func TestPreviewSubstitutesBoundPlaceholders(t *testing.T) {
	tree := []section.Section{
		paragraph("p1", "Hello {{firstName}}!", map[string]any{"firstName": "Ada"}),
	}

	html := Preview(tree, nil)
	if !strings.Contains(html, "Hello Ada!") {
		t.Fatalf("expected substituted content, got:\n%s", html)
	}
	if strings.Contains(html, "{{firstName}}") {
		t.Fatalf("expected no literal placeholder in output, got:\n%s", html)
	}
}

func TestPreviewRuntimeOverridesWinOverDefaults(t *testing.T) {
	tree := []section.Section{
		paragraph("p1", "Hello {{firstName}}!", map[string]any{"firstName": "Ada"}),
	}

	html := Preview(tree, map[string]any{"firstName": "Grace"})
	if !strings.Contains(html, "Hello Grace!") {
		t.Fatalf("expected runtime override, got:\n%s", html)
	}
}

func TestPreviewKeepsUnboundPlaceholdersVerbatim(t *testing.T) {
	tree := []section.Section{
		paragraph("p1", "Hello {{firstName}}!", nil),
	}

	html := Preview(tree, nil)
	if !strings.Contains(html, "{{firstName}}") {
		t.Fatalf("unbound placeholder must stay visible, got:\n%s", html)
	}
}

func TestPreviewIsIdempotent(t *testing.T) {
	tree := []section.Section{
		{ID: "h", Kind: section.KindHeading2, Content: "Report for {{quarter}}", Variables: map[string]any{"quarter": "Q3"}},
		{ID: "l", Kind: section.KindBulletList, Variables: map[string]any{"items": []any{"one", "two"}}},
	}

	first := Preview(tree, nil)
	second := Preview(tree, nil)
	if first != second {
		t.Fatalf("preview is not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestPreviewRendersHeadingsWithStyles(t *testing.T) {
	tree := []section.Section{{
		ID:      "h",
		Kind:    section.KindHeading1,
		Content: "Quarterly Update",
		Styles:  section.Styles{Color: "#222", Align: "center"},
	}}

	html := Preview(tree, nil)
	if !strings.Contains(html, `<h1 style="color: #222; text-align: center">Quarterly Update</h1>`) {
		t.Fatalf("unexpected heading markup:\n%s", html)
	}
}

func TestPreviewRendersListsAsRealMarkup(t *testing.T) {
	tree := []section.Section{{
		ID:   "l",
		Kind: section.KindNumberedList,
		Variables: map[string]any{
			"items": []any{"first", map[string]any{"text": "second"}},
		},
	}}

	html := Preview(tree, nil)
	if !strings.Contains(html, "<ol>") || strings.Count(html, "<li>") != 2 {
		t.Fatalf("expected two-item ordered list, got:\n%s", html)
	}
}

func TestPreviewFallsBackOnMalformedListPayload(t *testing.T) {
	tree := []section.Section{{
		ID:        "l",
		Kind:      section.KindBulletList,
		Variables: map[string]any{"items": 42},
	}}

	html := Preview(tree, nil)
	if !strings.Contains(html, "<ul><li></li></ul>") {
		t.Fatalf("expected safe fallback list, got:\n%s", html)
	}
}

func TestPreviewMergedCellsSkipCoveredPositions(t *testing.T) {
	tree := []section.Section{{
		ID:   "t",
		Kind: section.KindTable,
		Variables: map[string]any{
			"tableData": map[string]any{
				"rows": []any{
					[]any{"r0c0", "r0c1", "r0c2"},
					[]any{"r1c0", "r1c1", "r1c2"},
					[]any{"r2c0", "r2c1", "r2c2"},
				},
				"merges": []any{map[string]any{"row": 0, "col": 0, "rowSpan": 2, "colSpan": 2}},
			},
		},
	}}

	html := Preview(tree, nil)

	if !strings.Contains(html, `rowspan="2"`) || !strings.Contains(html, `colspan="2"`) {
		t.Fatalf("expected span attributes on the anchor, got:\n%s", html)
	}
	for _, covered := range []string{"r0c1", "r1c0", "r1c1"} {
		if strings.Contains(html, covered) {
			t.Fatalf("covered cell %s must not be emitted, got:\n%s", covered, html)
		}
	}
	if got := strings.Count(html, "<td"); got != 6 {
		t.Fatalf("expected 6 emitted cells, got %d:\n%s", got, html)
	}
}

func TestPreviewTableHeaderFirstColumn(t *testing.T) {
	tree := []section.Section{{
		ID:   "t",
		Kind: section.KindTable,
		Variables: map[string]any{
			"tableData": map[string]any{
				"headers":         []any{"North", "South"},
				"headerPlacement": "first-column",
				"rows": []any{
					[]any{"10", "20"},
					[]any{"30", "40"},
				},
			},
		},
	}}

	html := Preview(tree, nil)
	if strings.Contains(html, "<thead>") {
		t.Fatalf("first-column placement must not emit a thead, got:\n%s", html)
	}
	if !strings.Contains(html, "<th>North</th>") || !strings.Contains(html, "<th>South</th>") {
		t.Fatalf("expected row headers, got:\n%s", html)
	}
}

func TestPreviewFallsBackOnMalformedTablePayload(t *testing.T) {
	tree := []section.Section{{
		ID:        "t",
		Kind:      section.KindTable,
		Variables: map[string]any{"tableData": "garbage"},
	}}

	html := Preview(tree, nil)
	if !strings.Contains(html, "<table><tbody><tr><td></td></tr></tbody></table>") {
		t.Fatalf("expected safe fallback table, got:\n%s", html)
	}
}

func TestPreviewContainerWrapsChildren(t *testing.T) {
	tree := []section.Section{{
		ID:   "c",
		Kind: section.KindContainer,
		Children: []section.Section{
			paragraph("p1", "inner", nil),
		},
	}}

	html := Preview(tree, nil)
	if !strings.Contains(html, `<div class="mg-group">`) || !strings.Contains(html, "inner") {
		t.Fatalf("expected grouped child output, got:\n%s", html)
	}
}

func TestPreviewLayoutTableRendersGrid(t *testing.T) {
	tree := []section.Section{{
		ID:   "g",
		Kind: section.KindLayoutTable,
		Grid: [][]section.Cell{
			{
				{Sections: []section.Section{paragraph("a", "left", nil)}},
				{Sections: []section.Section{paragraph("b", "right", nil)}},
			},
		},
	}}

	html := Preview(tree, nil)
	if !strings.Contains(html, `<table class="mg-layout">`) {
		t.Fatalf("expected layout grid, got:\n%s", html)
	}
	if strings.Index(html, "left") > strings.Index(html, "right") {
		t.Fatalf("expected row-major cell order, got:\n%s", html)
	}
}

func TestPreviewLabeledContentList(t *testing.T) {
	tree := []section.Section{{
		ID:   "lc",
		Kind: section.KindLabeledContent,
		Variables: map[string]any{
			"label":       "Highlights",
			"contentType": "list",
			"items":       []any{"shipped {{feature}}"},
		},
	}}

	html := Preview(tree, map[string]any{"feature": "dark mode"})
	if !strings.Contains(html, "<strong>Highlights</strong>") {
		t.Fatalf("expected label markup, got:\n%s", html)
	}
	if !strings.Contains(html, "<li>shipped dark mode</li>") {
		t.Fatalf("expected substituted list item, got:\n%s", html)
	}
}

func TestPreviewSanitizesHostileMarkup(t *testing.T) {
	tree := []section.Section{
		paragraph("p1", `Hello <script>alert(1)</script><b>world</b>`, nil),
	}

	html := Preview(tree, nil)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tags must be stripped, got:\n%s", html)
	}
	if !strings.Contains(html, "<b>world</b>") {
		t.Fatalf("formatting markup must survive, got:\n%s", html)
	}
}

func TestInlineStyleFixedOrderAndNoEmptyDecls(t *testing.T) {
	style := inlineStyle(section.Styles{
		Padding:  "8px",
		Color:    "#000",
		FontSize: "14px",
	})
	if style != "color: #000; font-size: 14px; padding: 8px" {
		t.Fatalf("unexpected style assembly: %q", style)
	}
	if inlineStyle(section.Styles{}) != "" {
		t.Fatal("zero styles must produce no declarations")
	}
}
