package placeholder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractCurlyReferences(t *testing.T) {
	refs := Extract("Hello {{firstName}}, your {{account.plan.name}} renews soon")
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %#v", len(refs), refs)
	}
	if refs[0].Name != "firstName" || refs[0].Path != "" {
		t.Fatalf("unexpected first ref: %#v", refs[0])
	}
	if refs[1].Name != "account" || refs[1].Path != "plan.name" {
		t.Fatalf("unexpected second ref: %#v", refs[1])
	}
	if refs[1].Full() != "account.plan.name" {
		t.Fatalf("unexpected full ref: %s", refs[1].Full())
	}
}

func TestExtractDirectiveReferences(t *testing.T) {
	markup := `<span data-expression="value of account.name"></span>` +
		`<ul data-repeat="each item in items_abc123"><li data-expression="value of item.text"></li></ul>`

	names := Names(markup)
	want := []string{"account", "items_abc123", "item"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestExtractCountsBothFormsOnce(t *testing.T) {
	markup := `{{account.name}} and <span data-expression="value of account.name"></span>`
	refs := Extract(markup)
	if len(refs) != 1 {
		t.Fatalf("expected one deduplicated ref, got %d: %#v", len(refs), refs)
	}
}

func TestExtractIgnoresMalformedNames(t *testing.T) {
	for _, text := range []string{"{{}}", "{{ }}", "{{9lives}}", "{{a b}}", "{ {x} }"} {
		if refs := Extract(text); len(refs) != 0 {
			t.Fatalf("expected no refs in %q, got %#v", text, refs)
		}
	}
}

func TestReplacePreservesUnresolved(t *testing.T) {
	out := Replace("Hi {{known}} and {{unknown}}", func(ref Ref) (string, bool) {
		if ref.Name == "known" {
			return "Ada", true
		}
		return "", false
	})
	if out != "Hi Ada and {{unknown}}" {
		t.Fatalf("unexpected replacement output: %q", out)
	}
}

func TestGeneratedNameIsDeterministic(t *testing.T) {
	first := GeneratedName(ItemsPrefix, "0b526a82-0f7f-4c11-a6ba-46d86c60afc7")
	second := GeneratedName(ItemsPrefix, "0b526a82-0f7f-4c11-a6ba-46d86c60afc7")
	if first != second {
		t.Fatalf("generated name is not stable: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "items_") {
		t.Fatalf("expected items_ prefix, got %q", first)
	}
	if !IsIdentifier(first) {
		t.Fatalf("generated name %q is not a valid identifier", first)
	}
}

func TestGeneratedNameUsesFixedLengthSuffix(t *testing.T) {
	name := GeneratedName(TableRowsPrefix, "section-1234-abcd-5678-efgh")
	if name != "tableRows_5678efgh" {
		t.Fatalf("unexpected generated name: %q", name)
	}

	short := GeneratedName(LabelPrefix, "ab")
	if short != "label_ab" {
		t.Fatalf("unexpected short-id name: %q", short)
	}
}
