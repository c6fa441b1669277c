// Package sourcemap maps lines of the generated schema file back to the
// specification entities they were compiled from.
package sourcemap

import (
	"fmt"
	"strings"

	"github.com/vvka-141/appgen/internal/compiler"
	"github.com/vvka-141/appgen/internal/spec"
)

// Entry maps a range of schema file lines to their source.
type Entry struct {
	SchemaStart int    `yaml:"schema_start"` // First line in the schema file (1-based, inclusive)
	SchemaEnd   int    `yaml:"schema_end"`   // Last line in the schema file (1-based, inclusive)
	Source      string `yaml:"source"`       // Specification path
	SourceLine  int    `yaml:"source_line"`  // Line of the entity in the specification, 0 if unknown
	Description string `yaml:"description"`  // e.g. "create_table invoice (Invoice)"
}

// Location formats the source position as "path:line", or just the path
// when the line is unknown.
func (e Entry) Location() string {
	if e.SourceLine == 0 {
		return e.Source
	}
	return fmt.Sprintf("%s:%d", e.Source, e.SourceLine)
}

// SourceMap holds one entry per statement, in statement order.
type SourceMap struct {
	entries []Entry
}

// New creates a new empty SourceMap.
func New() *SourceMap {
	return &SourceMap{
		entries: make([]Entry, 0),
	}
}

// Build maps every statement of res to the entity that produced it. Line
// numbers follow the layout of res.SQL, where statements are separated by
// one blank line.
func Build(doc *spec.Document, res *compiler.Result) *SourceMap {
	sm := New()
	if res == nil {
		return sm
	}

	entities := make(map[string]string, len(res.Tables))
	for _, t := range res.Tables {
		entities[t.Name] = t.Entity
	}

	var schemas spec.Node
	source := ""
	if doc != nil {
		schemas = doc.Schemas()
		source = doc.Source
	}

	line := 1
	for _, stmt := range res.Statements {
		end := line + strings.Count(stmt.SQL, "\n")
		entity := entities[stmt.Table]
		desc := fmt.Sprintf("%s %s", stmt.Kind, stmt.Table)
		if entity != "" {
			desc += " (" + entity + ")"
		}
		sm.Add(line, end, source, schemas.KeyLine(entity), desc)
		line = end + 2
	}
	return sm
}

// Add records a mapping from a schema line range to its source.
// Lines are 1-based and inclusive on both ends.
func (sm *SourceMap) Add(schemaStart, schemaEnd int, source string, line int, desc string) {
	sm.entries = append(sm.entries, Entry{
		SchemaStart: schemaStart,
		SchemaEnd:   schemaEnd,
		Source:      source,
		SourceLine:  line,
		Description: desc,
	})
}

// Resolve finds the entry covering a schema file line.
func (sm *SourceMap) Resolve(schemaLine int) (Entry, bool) {
	for _, entry := range sm.entries {
		if schemaLine >= entry.SchemaStart && schemaLine <= entry.SchemaEnd {
			return entry, true
		}
	}
	return Entry{}, false
}

// Statement returns the entry of the statement at index i.
func (sm *SourceMap) Statement(i int) (Entry, bool) {
	if sm == nil || i < 0 || i >= len(sm.entries) {
		return Entry{}, false
	}
	return sm.entries[i], true
}

// Entries returns a copy of all source entries.
func (sm *SourceMap) Entries() []Entry {
	if sm == nil {
		return nil
	}
	result := make([]Entry, len(sm.entries))
	copy(result, sm.entries)
	return result
}

// Len returns the number of entries in the source map.
func (sm *SourceMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.entries)
}
