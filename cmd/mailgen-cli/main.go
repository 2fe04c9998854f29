package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	mailgen "github.com/goliatone/go-mailgen"
	"github.com/goliatone/go-mailgen/pkg/globals"
	"github.com/goliatone/go-mailgen/pkg/template"
	"github.com/goliatone/go-mailgen/pkg/transform"
)

func main() {
	templatePath := flag.String("template", "template.json", "template document path")
	globalsPath := flag.String("globals", "", "JSON file of fetched global variables keyed by name")
	presetsPath := flag.String("transformations", "", "JSON or YAML transformation preset document")
	mode := flag.String("mode", "preview", "output to produce: preview or production")
	output := flag.String("output", "", "output file (stdout if empty)")
	prompt := flag.Bool("prompt", false, "prompt for values of unresolved variables")
	page := flag.Bool("page", false, "wrap preview output in a standalone HTML page with default styles")
	flag.Parse()

	ctx := context.Background()

	data, err := os.ReadFile(*templatePath)
	if err != nil {
		log.Fatalf("Failed to read template: %v", err)
	}
	tpl, err := template.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse template: %v", err)
	}

	vars, err := loadGlobals(*globalsPath)
	if err != nil {
		log.Fatalf("Failed to load globals: %v", err)
	}

	var opts []template.Option
	if *presetsPath != "" {
		doc, err := transform.ParseDocumentFromFS(os.DirFS("."), *presetsPath)
		if err != nil {
			log.Fatalf("Failed to load transformations: %v", err)
		}
		opts = append(opts, template.WithTransformations(doc))
	}

	compiler := template.NewCompiler(opts...)

	values := map[string]any{}
	if *prompt {
		values, err = promptForValues(tpl)
		if err != nil {
			log.Fatalf("Failed to collect values: %v", err)
		}
	}

	result, err := compiler.Compile(ctx, tpl, vars, values)
	if err != nil {
		log.Fatalf("Failed to compile template: %v", err)
	}

	for _, issue := range result.Issues {
		if issue.SectionID != "" {
			fmt.Fprintf(os.Stderr, "[%s] %s (section %s)\n", issue.Class, issue.Message, issue.SectionID)
		} else {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", issue.Class, issue.Message)
		}
	}
	if result.Blocking() {
		log.Fatal("Template has blocking validation errors")
	}

	markup := result.Preview
	if *mode == "production" {
		markup = result.Production
	} else if *page {
		markup = mailgen.PreviewDocument(tpl.Name, markup)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(markup), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Markup written to %s\n", *output)
	} else {
		fmt.Println(markup)
	}
}

func loadGlobals(path string) (globals.Set, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payloads map[string]json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, err
	}
	vars := make(globals.Set, len(payloads))
	for name, payload := range payloads {
		vars[name] = globals.NewVariable(name, payload)
	}
	return vars, nil
}

// promptForValues asks for every catalog variable that has no default,
// so the preview can render fully bound.
func promptForValues(tpl mailgen.Template) (map[string]any, error) {
	values := make(map[string]any)
	for _, variable := range mailgen.BuildRegistry(tpl) {
		if variable.DefaultValue != nil && *variable.DefaultValue != "" {
			continue
		}
		var answer string
		ask := &survey.Input{
			Message: fmt.Sprintf("Value for %s (%s):", variable.Label, variable.Type),
		}
		var asker []survey.AskOpt
		if variable.IsRequired {
			asker = append(asker, survey.WithValidator(survey.Required))
		}
		if err := survey.AskOne(ask, &answer, asker...); err != nil {
			return nil, err
		}
		if answer != "" {
			values[variable.Name] = answer
		}
	}
	return values, nil
}
