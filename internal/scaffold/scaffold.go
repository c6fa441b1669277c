// Package scaffold generates a Go package from the specification: entity
// models, transfer objects and service interfaces.
package scaffold

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/vvka-141/appgen/internal/schema"
	"github.com/vvka-141/appgen/internal/spec"
	"github.com/vvka-141/appgen/pkg/appgen"
)

const generatedHeader = "Code generated by appgen. DO NOT EDIT."

// File is one generated source file, named relative to the package directory.
type File struct {
	Name    string
	Content []byte
}

// Scaffolder renders the Go package.
type Scaffolder struct {
	logger appgen.Logger
}

// NewScaffolder creates a Scaffolder that reports progress through logger.
func NewScaffolder(logger appgen.Logger) *Scaffolder {
	return &Scaffolder{logger: logger}
}

// Generate renders doc.go and, when they have content, models.go, dto.go and
// service.go. tables supply the models and must come from a compilation of doc.
// Files are returned in a fixed order and rendering is deterministic.
func (s *Scaffolder) Generate(doc *spec.Document, tables []*schema.Table, pkg string) ([]File, error) {
	if pkg == "" {
		pkg = PackageName(doc.BoundedContext())
	}

	g := &generator{doc: doc, pkg: pkg, entities: make(map[string]bool, len(tables))}
	for _, t := range tables {
		g.entities[t.Entity] = true
	}

	candidates := []struct {
		name  string
		build func() (*jen.File, bool)
	}{
		{"doc.go", g.docFile},
		{"models.go", func() (*jen.File, bool) { return g.modelsFile(tables) }},
		{"dto.go", g.dtoFile},
		{"service.go", g.serviceFile},
	}

	var files []File
	for _, c := range candidates {
		f, ok := c.build()
		if !ok {
			s.logger.Verbose("scaffold: %s skipped, nothing to generate", c.name)
			continue
		}
		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", c.name, err)
		}
		s.logger.Verbose("scaffold: rendered %s (%d bytes)", c.name, buf.Len())
		files = append(files, File{Name: c.name, Content: buf.Bytes()})
	}
	return files, nil
}

type generator struct {
	doc      *spec.Document
	pkg      string
	entities map[string]bool
}

func (g *generator) newFile() *jen.File {
	f := jen.NewFile(g.pkg)
	f.HeaderComment(generatedHeader)
	return f
}

func (g *generator) docFile() (*jen.File, bool) {
	f := jen.NewFile(g.pkg)
	f.HeaderComment(generatedHeader)
	f.PackageComment(fmt.Sprintf("Package %s contains the %s bounded context generated by appgen.", g.pkg, g.doc.BoundedContext()))
	return f, true
}
