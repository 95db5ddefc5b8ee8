package pipeline

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed artifact.schema.json
var artifactSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func artifactSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(artifactSchemaJSON))
	})
	return schema, schemaErr
}

// validateDocument checks a decoded artifact document against the embedded schema.
// doc must be built from JSON-compatible values (maps, slices, strings, numbers, bools).
func validateDocument(doc any) error {
	s, err := artifactSchema()
	if err != nil {
		return fmt.Errorf("compile artifact schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidArtifact, strings.Join(errs, "; "))
	}
	return nil
}
