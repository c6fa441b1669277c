// Package config loads the optional appgen.yaml project file and .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables consulted for the apply connection string, in order.
const (
	EnvConnectionString = "APPGEN_CONNECTION_STRING"
	EnvDatabaseURL      = "DATABASE_URL"
)

type OutputConfig struct {
	SchemaFile string `yaml:"schema_file"`
	// Manifest is nil when not set; a missing value means true.
	Manifest *bool `yaml:"manifest"`
}

type PolicyConfig struct {
	Unresolved     string `yaml:"unresolved"`
	Cycles         string `yaml:"cycles"`
	TolerateErrors bool   `yaml:"tolerate_errors"`
}

type ScaffoldConfig struct {
	Package string `yaml:"package"`
}

type ApplyConfig struct {
	Timeout string `yaml:"timeout"`
}

type ProjectConfig struct {
	Output   OutputConfig      `yaml:"output"`
	Policy   PolicyConfig      `yaml:"policy"`
	Types    map[string]string `yaml:"types"`
	Scaffold ScaffoldConfig    `yaml:"scaffold"`
	Apply    ApplyConfig       `yaml:"apply"`
}

// Load reads appgen.yaml from dir. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func Load(fsProvider filesystem.FileSystemProvider, dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, appgen.ConfigFileName)
	data, err := fsProvider.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", appgen.ErrInvalidConfig, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

// Validate checks enumerated values and durations.
func (c *ProjectConfig) Validate() error {
	if _, err := appgen.ParseUnresolvedPolicy(c.Policy.Unresolved); err != nil {
		return err
	}
	if _, err := appgen.ParseCyclePolicy(c.Policy.Cycles); err != nil {
		return err
	}
	if _, err := c.ApplyTimeout(); err != nil {
		return err
	}
	if strings.ContainsAny(c.Output.SchemaFile, `/\`) {
		return fmt.Errorf("%w: output.schema_file must be a file name, got %q", appgen.ErrInvalidConfig, c.Output.SchemaFile)
	}
	return nil
}

// WriteManifest reports whether the manifest should be written.
func (c *ProjectConfig) WriteManifest() bool {
	return c.Output.Manifest == nil || *c.Output.Manifest
}

// ApplyTimeout returns apply.timeout, or zero when unset.
func (c *ProjectConfig) ApplyTimeout() (time.Duration, error) {
	if c.Apply.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Apply.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: apply.timeout must be a positive duration, got %q", appgen.ErrInvalidConfig, c.Apply.Timeout)
	}
	return d, nil
}

// LoadDotEnv loads .env from each directory that has one. Variables already
// set in the environment are not overridden.
func LoadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("%w: failed to load %s: %v", appgen.ErrInvalidConfig, path, err)
		}
	}
	return nil
}

// ConnectionFromEnv returns the first non-empty connection variable.
func ConnectionFromEnv() string {
	for _, key := range []string{EnvConnectionString, EnvDatabaseURL} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// Default returns the configuration written by appgen init.
func Default() *ProjectConfig {
	manifest := true
	return &ProjectConfig{
		Output: OutputConfig{SchemaFile: appgen.DefaultSchemaFile, Manifest: &manifest},
		Policy: PolicyConfig{Unresolved: string(appgen.UnresolvedError), Cycles: string(appgen.CycleReject)},
		Apply:  ApplyConfig{Timeout: appgen.DefaultApplyTimeout.String()},
	}
}

// Marshal renders the configuration as YAML.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(b.String()), nil
}

// Save validates cfg and writes it as appgen.yaml in dir. An existing file is
// kept unless overwrite is set.
func Save(fsProvider filesystem.FileSystemProvider, dir string, cfg *ProjectConfig, overwrite bool) (string, error) {
	configPath := filepath.Join(dir, appgen.ConfigFileName)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := fsProvider.Stat(configPath); err == nil {
			return "", fmt.Errorf("%w: %s already exists (use --force to overwrite)", appgen.ErrInvalidConfig, configPath)
		}
	}
	data, err := cfg.Marshal()
	if err != nil {
		return "", err
	}
	if err := fsProvider.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
	}
	if err := fsProvider.WriteFile(configPath, data); err != nil {
		return "", fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
	}
	return configPath, nil
}
