// Package output writes generated artifacts into the output directory.
package output

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/vvka-141/appgen/internal/checksum"
	"github.com/vvka-141/appgen/internal/compiler"
	"github.com/vvka-141/appgen/internal/files/filesystem"
	"github.com/vvka-141/appgen/internal/scaffold"
	"github.com/vvka-141/appgen/internal/sourcemap"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Artifacts is everything one generate run produces.
type Artifacts struct {
	Result *compiler.Result
	// Source is the specification path recorded in the manifest.
	Source string
	// SchemaFile is the DDL file name; empty skips the schema.
	SchemaFile string
	// ScaffoldPackage is the directory for Scaffold files; empty skips them.
	ScaffoldPackage string
	Scaffold        []scaffold.File
	// SourceMap, when set, is recorded in the manifest next to the schema.
	SourceMap     *sourcemap.SourceMap
	WriteManifest bool
}

// Writer writes artifacts through a filesystem provider.
type Writer struct {
	fs     filesystem.FileSystemProvider
	logger appgen.Logger
	sums   checksum.SHA256
}

// NewWriter creates a Writer.
func NewWriter(fsProvider filesystem.FileSystemProvider, logger appgen.Logger) *Writer {
	return &Writer{fs: fsProvider, logger: logger, sums: checksum.New()}
}

// SchemaContent returns the schema file content for a result: the SQL plus
// a final newline, or nothing when there are no tables.
func SchemaContent(res *compiler.Result) []byte {
	if res.SQL == "" {
		return nil
	}
	return []byte(res.SQL + "\n")
}

// BuildManifest describes the artifacts without writing anything.
func (w *Writer) BuildManifest(a Artifacts) *Manifest {
	content := SchemaContent(a.Result)
	sums := w.sums.Sum(content)

	m := &Manifest{
		Generator:      "appgen",
		SchemaID:       SchemaID(a.Result.BoundedContext, sums.Normalized).String(),
		BoundedContext: a.Result.BoundedContext,
		Source:         filepath.ToSlash(a.Source),
		SchemaFile:     a.SchemaFile,
		Checksum:       sums,
		Deferred:       a.Result.Deferred,
		Tables:         make([]string, 0, len(a.Result.Tables)),
		Diagnostics:    a.Result.Diagnostics,
	}
	for _, t := range a.Result.Tables {
		m.Tables = append(m.Tables, t.Name)
	}
	if a.SchemaFile != "" {
		m.SourceMap = a.SourceMap.Entries()
	}
	if a.ScaffoldPackage != "" {
		for _, f := range a.Scaffold {
			m.Scaffold = append(m.Scaffold, path.Join(a.ScaffoldPackage, f.Name))
		}
	}
	return m
}

// Write creates outDir if needed and writes the schema, scaffold files and
// manifest, in that order. It returns the paths written. Errors wrap
// appgen.ErrOutputFailed.
func (w *Writer) Write(outDir string, a Artifacts) ([]string, error) {
	if a.Result == nil {
		return nil, fmt.Errorf("%w: nothing to write", appgen.ErrOutputFailed)
	}
	if err := w.fs.MkdirAll(outDir); err != nil {
		return nil, fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
	}

	var written []string
	put := func(p string, data []byte) error {
		if err := w.fs.WriteFile(p, data); err != nil {
			return fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
		}
		w.logger.Verbose("wrote %s (%d bytes)", p, len(data))
		written = append(written, p)
		return nil
	}

	if a.SchemaFile != "" {
		if err := put(filepath.Join(outDir, a.SchemaFile), SchemaContent(a.Result)); err != nil {
			return written, err
		}
	}

	if a.ScaffoldPackage != "" && len(a.Scaffold) > 0 {
		pkgDir := filepath.Join(outDir, a.ScaffoldPackage)
		if err := w.fs.MkdirAll(pkgDir); err != nil {
			return written, fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
		}
		for _, f := range a.Scaffold {
			if err := put(filepath.Join(pkgDir, f.Name), f.Content); err != nil {
				return written, err
			}
		}
	}

	if a.WriteManifest {
		data, err := w.BuildManifest(a).Marshal()
		if err != nil {
			return written, fmt.Errorf("%w: %v", appgen.ErrOutputFailed, err)
		}
		if err := put(filepath.Join(outDir, appgen.ManifestFile), data); err != nil {
			return written, err
		}
	}

	return written, nil
}
