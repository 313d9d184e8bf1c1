// Package schema validates documents against the repository's JSON Schemas.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks doc against the schema at schemaPath and returns the
// validation messages, empty on success.
func Validate(schemaPath string, doc any) ([]string, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("resolve schema %s: %w", schemaPath, err)
	}
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + abs)
	docLoader := gojsonschema.NewGoLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate against %s: %w", schemaPath, err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return errs, nil
}

// ValidateFile validates the JSON document at docPath.
func ValidateFile(schemaPath, docPath string) ([]string, error) {
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", docPath, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", docPath, err)
	}
	return Validate(schemaPath, doc)
}
