package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/appgen/internal/checksum"
	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/sourcemap"
)

// Manifest describes one generation run. It holds no timestamps so repeated
// runs over the same input produce identical files.
type Manifest struct {
	Generator      string            `yaml:"generator"`
	SchemaID       string            `yaml:"schema_id"`
	BoundedContext string            `yaml:"bounded_context"`
	Source         string            `yaml:"source"`
	SchemaFile     string            `yaml:"schema_file,omitempty"`
	Checksum       checksum.Sums     `yaml:"checksum"`
	Deferred       bool              `yaml:"deferred_foreign_keys"`
	Tables         []string          `yaml:"tables"`
	Scaffold       []string          `yaml:"scaffold,omitempty"`
	Diagnostics    []diag.Diagnostic `yaml:"diagnostics,omitempty"`
	SourceMap      []sourcemap.Entry `yaml:"source_map,omitempty"`
}

// Marshal renders the manifest as YAML with two-space indentation.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadManifest parses a manifest written by Marshal.
func ReadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
