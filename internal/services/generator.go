// Package services orchestrates the appgen commands: load the specification,
// compile it, and write, verify or apply the result.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/appgen/internal/compiler"
	"github.com/vvka-141/appgen/internal/db"
	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/internal/output"
	"github.com/vvka-141/appgen/internal/scaffold"
	"github.com/vvka-141/appgen/internal/sourcemap"
	"github.com/vvka-141/appgen/internal/spec"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Outcome is what a command produced. Result is set whenever compilation
// ran, including when it failed, so callers can report the diagnostics.
type Outcome struct {
	Result *compiler.Result
	// Written lists the files generate wrote, in order.
	Written []string
	// Verified is the number of statements check executed on SQLite.
	Verified int
}

// GeneratorService implements generate and check.
// Thread-Safety: safe for concurrent use when the filesystem provider is.
type GeneratorService struct {
	fs         filesystem.FileSystemProvider
	logger     appgen.Logger
	scaffolder *scaffold.Scaffolder
	writer     *output.Writer
}

// NewGeneratorService creates a GeneratorService.
// Panics on nil dependencies.
func NewGeneratorService(fsProvider filesystem.FileSystemProvider, logger appgen.Logger) *GeneratorService {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &GeneratorService{
		fs:         fsProvider,
		logger:     logger,
		scaffolder: scaffold.NewScaffolder(logger),
		writer:     output.NewWriter(fsProvider, logger),
	}
}

func compileOptions(s appgen.CompileSettings) compiler.Options {
	return compiler.Options{
		Unresolved:     s.Unresolved,
		Cycles:         s.Cycles,
		TolerateErrors: s.TolerateErrors,
		Types:          s.Types,
	}
}

// compile loads and compiles the specification at path.
func (s *GeneratorService) compile(path string, settings appgen.CompileSettings) (*spec.Document, *compiler.Result, error) {
	doc, err := spec.Load(s.fs, path)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Verbose("loaded %s (bounded context %s)", path, doc.BoundedContext())

	res, err := compiler.Compile(doc, compileOptions(settings))
	if res != nil {
		s.logger.Verbose("compiled %d table(s) into %d statement(s) with %d diagnostic(s)",
			len(res.Tables), len(res.Statements), len(res.Diagnostics))
	}
	return doc, res, err
}

// Generate compiles the specification and writes the artifacts selected by
// cfg.Mode. Nothing is written when compilation fails.
func (s *GeneratorService) Generate(ctx context.Context, cfg appgen.GenerateConfig) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, res, err := s.compile(cfg.SpecPath, cfg.CompileSettings)
	if err != nil {
		return &Outcome{Result: res}, err
	}

	artifacts := output.Artifacts{
		Result:        res,
		Source:        cfg.SpecPath,
		SourceMap:     sourcemap.Build(doc, res),
		WriteManifest: cfg.WriteManifest,
	}
	if cfg.Mode.IncludesSchema() {
		artifacts.SchemaFile = cfg.SchemaFile
	}
	if cfg.Mode.IncludesScaffold() {
		pkg := cfg.Package
		if pkg == "" {
			pkg = scaffold.PackageName(res.BoundedContext)
		}
		files, err := s.scaffolder.Generate(doc, res.Tables, pkg)
		if err != nil {
			return &Outcome{Result: res}, fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
		}
		artifacts.ScaffoldPackage = pkg
		artifacts.Scaffold = files
	}

	written, err := s.writer.Write(cfg.OutDir, artifacts)
	return &Outcome{Result: res, Written: written}, err
}

// Check compiles the specification without writing anything and executes
// the CREATE TABLE statements on an in-memory SQLite database.
func (s *GeneratorService) Check(ctx context.Context, cfg appgen.CheckConfig) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	_, res, err := s.compile(cfg.SpecPath, cfg.CompileSettings)
	if err != nil {
		return &Outcome{Result: res}, err
	}

	n, err := db.Verify(ctx, res.Statements)
	if err != nil {
		return &Outcome{Result: res, Verified: n}, err
	}
	s.logger.Verbose("executed %d statement(s) on in-memory SQLite", n)
	return &Outcome{Result: res, Verified: n}, nil
}

// IsCompilationFailure reports whether err came from error diagnostics,
// as opposed to I/O or configuration problems.
func IsCompilationFailure(err error) bool {
	var cerr *compiler.Error
	return errors.As(err, &cerr)
}
