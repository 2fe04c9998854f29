package template

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailgen/pkg/globals"
	"github.com/goliatone/go-mailgen/pkg/registry"
	"github.com/goliatone/go-mailgen/pkg/section"
	"github.com/goliatone/go-mailgen/pkg/transform"
)

func welcomeTemplate() Template {
	tpl := New("Welcome Note")
	tpl.Subject = "Hello {{first_name}}"

	body := section.New(section.KindParagraph)
	body.Content = "Hi {{first_name}}, thanks from {{account.name}}."
	body.Variables = map[string]any{"first_name": "friend"}
	tpl.Sections = []section.Section{body}
	return tpl
}

func TestCompileEndToEnd(t *testing.T) {
	tpl := welcomeTemplate()
	vars := globals.Set{
		"account": globals.NewVariable("account", []byte(`{"name":"Acme"}`)),
	}

	result, err := NewCompiler().Compile(context.Background(), tpl, vars, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Blocking() {
		t.Fatalf("expected a clean compile, got issues: %+v", result.Issues)
	}
	if !strings.Contains(result.Preview, "Acme") {
		t.Fatalf("expected the global to resolve into the preview:\n%s", result.Preview)
	}
	if !strings.Contains(result.Preview, "friend") {
		t.Fatalf("expected the section default to substitute:\n%s", result.Preview)
	}
	if !strings.Contains(result.Production, `data-expression="value of first_name"`) {
		t.Fatalf("expected a value directive in production markup:\n%s", result.Production)
	}
	if strings.Contains(result.Production, "account.name") {
		t.Fatalf("resolved global must not survive into production markup:\n%s", result.Production)
	}

	names := make([]string, 0, len(result.Registry))
	for _, variable := range result.Registry {
		names = append(names, variable.Name)
	}
	if diff := cmp.Diff([]string{"first_name"}, names); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}
	if !result.Registry[0].IsRequired || result.Registry[0].Source != registry.SourceSubject {
		t.Fatalf("subject variable must be required and subject-sourced: %+v", result.Registry[0])
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	tpl := welcomeTemplate()
	vars := globals.Set{
		"account": globals.NewVariable("account", []byte(`{"name":"Acme"}`)),
	}
	compiler := NewCompiler()

	first, err := compiler.Compile(context.Background(), tpl, vars, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := compiler.Compile(context.Background(), tpl, vars, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Preview != second.Preview {
		t.Fatal("preview output differs between identical compiles")
	}
	if first.Production != second.Production {
		t.Fatal("production output differs between identical compiles")
	}
	if diff := cmp.Diff(first.Registry, second.Registry); diff != "" {
		t.Fatalf("registry differs between identical compiles:\n%s", diff)
	}
}

func TestCompileDoesNotMutateInput(t *testing.T) {
	tpl := welcomeTemplate()
	vars := globals.Set{
		"account": globals.NewVariable("account", []byte(`{"name":"Acme"}`)),
	}

	if _, err := NewCompiler().Compile(context.Background(), tpl, vars, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(tpl.Sections[0].Content, "{{account.name}}") {
		t.Fatalf("compilation mutated the caller's tree: %q", tpl.Sections[0].Content)
	}
}

func TestCompileRuntimeValuesOverrideDefaults(t *testing.T) {
	tpl := welcomeTemplate()

	result, err := NewCompiler().Compile(context.Background(), tpl, nil, map[string]any{"first_name": "Ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Preview, "Ada") || strings.Contains(result.Preview, "friend") {
		t.Fatalf("expected the runtime value to win:\n%s", result.Preview)
	}
}

func TestCompileAppliesTransformationPresets(t *testing.T) {
	tpl := New("Account List")
	tpl.Subject = "Top account"
	body := section.New(section.KindParagraph)
	body.Content = "Winner: {{accounts}}"
	body.Variables = map[string]any{"accounts": "none yet"}
	tpl.Sections = []section.Section{body}

	vars := globals.Set{
		"accounts": globals.NewVariable("accounts", []byte(`[{"n":"b","v":2},{"n":"a","v":1},{"n":"c","v":3}]`)),
	}
	presets := transform.Document{
		Transformations: map[string]transform.Transformation{
			"accounts": {
				Filters:   []transform.Filter{{Field: "v", Operator: transform.OpGreaterThan, Value: "1"}},
				SortField: "n",
				Limit:     1,
			},
		},
	}

	compiler := NewCompiler(WithTransformations(presets))
	result, err := compiler.Compile(context.Background(), tpl, vars, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Preview, `&#34;n&#34;:&#34;b&#34;`) {
		t.Fatalf("expected the transformed payload in the preview:\n%s", result.Preview)
	}
	if strings.Contains(result.Preview, `&#34;n&#34;:&#34;c&#34;`) {
		t.Fatalf("filtered items must not appear:\n%s", result.Preview)
	}
}

func TestCompileRequiresFrameSections(t *testing.T) {
	tpl := welcomeTemplate()
	tpl.Header = section.Section{}

	_, err := NewCompiler().Compile(context.Background(), tpl, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "header") {
		t.Fatalf("expected a header error, got %v", err)
	}

	tpl = welcomeTemplate()
	tpl.Footer = section.Section{}
	_, err = NewCompiler().Compile(context.Background(), tpl, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "footer") {
		t.Fatalf("expected a footer error, got %v", err)
	}
}

func TestCompileHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewCompiler().Compile(ctx, welcomeTemplate(), nil, nil); err == nil {
		t.Fatal("expected a cancelled-context error")
	}
}

func TestResultBlocking(t *testing.T) {
	tpl := welcomeTemplate()
	tpl.Name = "x"

	result, err := NewCompiler().Compile(context.Background(), tpl, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Blocking() {
		t.Fatalf("expected a short name to block saving, got issues: %+v", result.Issues)
	}
}
