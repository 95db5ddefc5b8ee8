package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads, validates and builds the pipeline stored at path.
// The encoding is picked from the extension: .yaml/.yml for YAML, anything else as JSON.
func Load(path string) (*Pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	a, err := Decode(raw, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := Build(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses raw artifact bytes, checks them against the artifact schema
// and returns the typed artifact.
func Decode(raw []byte, fromYAML bool) (*Artifact, error) {
	var doc any
	if fromYAML {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidArtifact, err)
		}
	} else {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: parse json: %v", ErrInvalidArtifact, err)
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidArtifact)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	// The schema-checked document is re-encoded so both encodings share one typed decode.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	var a Artifact
	if err := json.Unmarshal(normalized, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return &a, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
