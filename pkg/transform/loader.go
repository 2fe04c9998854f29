package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a declarative set of named transformation presets, one per
// integration-bound global variable:
//
//	{
//	  "transformations": {
//	    "accounts": {
//	      "filters": [{"field": "status", "operator": "equals", "value": "active"}],
//	      "sortField": "name",
//	      "limit": 10
//	    }
//	  }
//	}
type Document struct {
	Transformations map[string]Transformation `json:"transformations" yaml:"transformations"`
}

// ParseDocument reads a preset document from raw JSON or YAML bytes.
func ParseDocument(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, errors.New("transform loader: document is empty")
	}

	var doc Document
	if looksLikeJSON(data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("transform loader: parse document: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("transform loader: parse document: %w", err)
	}
	return doc, nil
}

// ParseDocumentFromFS loads a preset document from the provided filesystem
// path.
func ParseDocumentFromFS(fsys fs.FS, path string) (Document, error) {
	if fsys == nil {
		return Document{}, errors.New("transform loader: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return Document{}, errors.New("transform loader: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("transform loader: read %s: %w", path, err)
	}
	return ParseDocument(data)
}

// For returns the preset registered under name, when one exists.
func (d Document) For(name string) (Transformation, bool) {
	t, ok := d.Transformations[name]
	return t, ok
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
