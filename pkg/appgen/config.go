package appgen

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CompileSettings are the policies shared by every command that compiles a spec.
type CompileSettings struct {
	// Unresolved controls the severity of unresolved foreign keys.
	Unresolved UnresolvedPolicy

	// Cycles controls how reference cycles between tables are handled.
	Cycles CyclePolicy

	// TolerateErrors emits output even when error diagnostics exist.
	TolerateErrors bool

	// Types overrides the built-in SQL type mapping, keyed "type" or "type/format".
	Types map[string]string
}

func (s *CompileSettings) validate() []error {
	var errs []error
	if _, err := ParseUnresolvedPolicy(string(s.Unresolved)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseCyclePolicy(string(s.Cycles)); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// GenerateConfig contains all parameters needed for a generate operation.
type GenerateConfig struct {
	CompileSettings

	// SpecPath is the JSON or YAML specification file
	SpecPath string

	// OutDir receives schema.sql, the scaffold package and the manifest
	OutDir string

	// Mode selects the emitted artifacts
	Mode Mode

	// SchemaFile is the DDL file name inside OutDir
	SchemaFile string

	// Package is the scaffold package name; empty derives it from the bounded context
	Package string

	// WriteManifest writes appgen.manifest.yaml next to the schema
	WriteManifest bool
}

// Validate checks if the GenerateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if c.SpecPath == "" {
		errs = append(errs, fmt.Errorf("SpecPath is required: %w", ErrInvalidConfig))
	}
	if c.OutDir == "" {
		errs = append(errs, fmt.Errorf("OutDir is required: %w", ErrInvalidConfig))
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		errs = append(errs, err)
	}
	if c.Mode.IncludesSchema() && c.SchemaFile == "" {
		errs = append(errs, fmt.Errorf("SchemaFile is required in %s mode: %w", c.Mode, ErrInvalidConfig))
	}
	if strings.ContainsAny(c.SchemaFile, `/\`) {
		errs = append(errs, fmt.Errorf("SchemaFile must be a file name, got %q: %w", c.SchemaFile, ErrInvalidConfig))
	}
	errs = append(errs, c.CompileSettings.validate()...)

	return errors.Join(errs...)
}

// CheckConfig contains all parameters needed for a check operation.
type CheckConfig struct {
	CompileSettings

	// SpecPath is the JSON or YAML specification file
	SpecPath string
}

// Validate checks if the CheckConfig has all required fields and valid values.
func (c *CheckConfig) Validate() error {
	var errs []error
	if c.SpecPath == "" {
		errs = append(errs, fmt.Errorf("SpecPath is required: %w", ErrInvalidConfig))
	}
	errs = append(errs, c.CompileSettings.validate()...)
	return errors.Join(errs...)
}

// ApplyConfig contains all parameters needed to apply a compiled schema.
type ApplyConfig struct {
	CompileSettings

	// SpecPath is the JSON or YAML specification file
	SpecPath string

	// ConnectionString is a PostgreSQL URI, ADO.NET string, sqlite:// path or file: URI
	ConnectionString string

	// Timeout bounds the whole operation
	Timeout time.Duration
}

// Validate checks if the ApplyConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ApplyConfig) Validate() error {
	var errs []error

	if c.SpecPath == "" {
		errs = append(errs, fmt.Errorf("SpecPath is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}
	errs = append(errs, c.CompileSettings.validate()...)

	return errors.Join(errs...)
}
