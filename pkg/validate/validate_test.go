package validate

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

func validTree() (section.Section, []section.Section, section.Section) {
	return section.New(section.KindHeader),
		[]section.Section{paragraph("s1", "Hello there", nil)},
		section.New(section.KindFooter)
}

func assertNoIssues(t *testing.T, issues []Issue) {
	t.Helper()
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}
}

func TestValidateAcceptsMinimalTemplate(t *testing.T) {
	header, sections, footer := validTree()
	assertNoIssues(t, Validate("Welcome Note", "Hello", header, sections, footer))
}

func TestValidateNameRules(t *testing.T) {
	header, sections, footer := validTree()

	cases := map[string]string{
		"":         "required",
		"ab":       "at least",
		strings.Repeat("x", 101): "at most",
		"bad/name": "may only contain",
	}
	for name, fragment := range cases {
		issues := Validate(name, "Hello", header, sections, footer)
		if len(issues) != 1 {
			t.Fatalf("name %q: expected one issue, got %#v", name, issues)
		}
		if issues[0].Class != ClassStructural {
			t.Fatalf("name %q: expected structural issue, got %q", name, issues[0].Class)
		}
		if !strings.Contains(issues[0].Message, fragment) {
			t.Fatalf("name %q: expected message containing %q, got %q", name, fragment, issues[0].Message)
		}
	}
}

func TestValidateSubjectRules(t *testing.T) {
	header, sections, footer := validTree()

	cases := map[string]string{
		"":                        "required",
		strings.Repeat("s", 201):  "at most",
		"Hi {{name}":              "unbalanced",
		"Hi {{}}":                 "empty placeholder",
	}
	for subject, fragment := range cases {
		issues := Validate("Welcome Note", subject, header, sections, footer)
		found := false
		for _, issue := range issues {
			if strings.Contains(issue.Message, fragment) {
				found = true
			}
		}
		if !found {
			t.Fatalf("subject %q: expected issue containing %q, got %#v", subject, fragment, issues)
		}
	}
}

func TestValidateRequiresContentSection(t *testing.T) {
	header, _, footer := validTree()
	issues := Validate("Welcome Note", "Hello", header, nil, footer)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "at least one content section") {
		t.Fatalf("expected minimum-content issue, got %#v", issues)
	}
}

func TestValidateSingleUseCountsNestedOccurrences(t *testing.T) {
	header, _, footer := validTree()
	sections := []section.Section{
		{ID: "b1", Kind: section.KindBanner},
		{ID: "c1", Kind: section.KindContainer, Children: []section.Section{
			{ID: "b2", Kind: section.KindBanner},
		}},
	}

	issues := Validate("Welcome Note", "Hello", header, sections, footer)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %#v", issues)
	}
	issue := issues[0]
	if issue.Class != ClassStructural || issue.SectionKind != section.KindBanner {
		t.Fatalf("unexpected issue: %#v", issue)
	}
	if !strings.Contains(issue.Message, "found 2") {
		t.Fatalf("expected reported count of 2, got %q", issue.Message)
	}
}

func TestValidateReportsUndeclaredPlaceholder(t *testing.T) {
	header, _, footer := validTree()
	sections := []section.Section{
		paragraph("s1", "Hi {{x}}", nil),
	}

	issues := Validate("Welcome Note", "Hello", header, sections, footer)
	if len(issues) != 1 {
		t.Fatalf("expected exactly one binding issue, got %#v", issues)
	}
	issue := issues[0]
	if issue.Class != ClassBinding {
		t.Fatalf("expected binding class, got %q", issue.Class)
	}
	if issue.SectionID != "s1" {
		t.Fatalf("expected issue to address section s1, got %q", issue.SectionID)
	}
	if !strings.Contains(issue.Message, `"x"`) {
		t.Fatalf("expected issue to name the placeholder, got %q", issue.Message)
	}
	if !issue.Blocking() {
		t.Fatal("binding issues must block saving")
	}
}

func TestValidateEmptyValuesAreWarningsOnly(t *testing.T) {
	header, _, footer := validTree()
	sections := []section.Section{
		paragraph("s1", "Hi {{greeting}}", map[string]any{"greeting": ""}),
		{ID: "s2", Kind: section.KindBulletList, Variables: map[string]any{"items": []any{}}},
	}

	issues := Validate("Welcome Note", "Hello", header, sections, footer)
	if len(issues) != 2 {
		t.Fatalf("expected two defaulting warnings, got %#v", issues)
	}
	for _, issue := range issues {
		if issue.Class != ClassDefaulting {
			t.Fatalf("expected defaulting warning, got %#v", issue)
		}
		if issue.Blocking() {
			t.Fatalf("defaulting warnings must not block saving: %#v", issue)
		}
	}
}

func TestValidateGeneralIssuesComeFirst(t *testing.T) {
	header, _, footer := validTree()
	sections := []section.Section{
		paragraph("s1", "Hi {{x}}", nil),
	}

	issues := Validate("ab", "Hello", header, sections, footer)
	if len(issues) < 2 {
		t.Fatalf("expected general and section issues, got %#v", issues)
	}
	if issues[0].SectionID != "" {
		t.Fatalf("general issues must precede section issues, got %#v", issues)
	}
	if issues[len(issues)-1].SectionID != "s1" {
		t.Fatalf("section issues must come last, got %#v", issues)
	}
}
