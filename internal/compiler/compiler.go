// Package compiler runs the schema pipeline: extraction, foreign-key
// resolution, dependency ordering and DDL emission.
package compiler

import (
	"fmt"
	"strings"

	"github.com/vvka-141/appgen/internal/ddl"
	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/extractor"
	"github.com/vvka-141/appgen/internal/graph"
	"github.com/vvka-141/appgen/internal/resolver"
	"github.com/vvka-141/appgen/internal/schema"
	"github.com/vvka-141/appgen/internal/spec"
	"github.com/vvka-141/appgen/pkg/appgen"
)

// Options are the compilation policies. The zero value is the strict default.
type Options struct {
	Unresolved     appgen.UnresolvedPolicy
	Cycles         appgen.CyclePolicy
	TolerateErrors bool
	// Types overrides the built-in type mapping, keyed "type" or "type/format".
	Types map[string]string
}

// Result is the output of one compilation.
type Result struct {
	BoundedContext string
	// Tables are in emission order.
	Tables      []*schema.Table
	Statements  []ddl.Statement
	SQL         string
	Diagnostics diag.List
	// Deferred is true when foreign keys are attached with ALTER TABLE.
	Deferred bool
}

// Error is returned when compilation produced error diagnostics and errors
// are not tolerated.
type Error struct {
	Diagnostics diag.List
}

func (e *Error) Error() string {
	errs := e.Diagnostics.Errors()
	if len(errs) == 0 {
		return "compilation failed"
	}
	msg := fmt.Sprintf("compilation failed with %d error(s): %s", len(errs), errs[0])
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(errs)-1)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return appgen.ErrCompilationFailed
}

// Compile turns a parsed specification into ordered DDL.
//
// Every stage runs to completion and all diagnostics are collected in stage
// order. When an error diagnostic exists and opts.TolerateErrors is false, the
// result is returned together with an *Error; callers must not write it out.
// Compile is deterministic: equal input and options give byte-identical SQL.
func Compile(doc *spec.Document, opts Options) (*Result, error) {
	var diags diag.List

	cat, extractDiags := extractor.Extract(doc, extractor.NewTypeMapper(opts.Types))
	diags.Append(extractDiags)

	tables, resolveDiags := resolver.Resolve(cat, resolver.Options{Unresolved: opts.Unresolved})
	diags.Append(resolveDiags)

	ordered, skipped := graph.New(tables).OrderIgnoringCycles()
	deferred := len(skipped) > 0 && opts.Cycles == appgen.CycleDefer
	reportCycles(&diags, tables, skipped, opts.Cycles)

	stmts := ddl.Statements(ordered, ddl.Options{DeferForeignKeys: deferred})
	result := &Result{
		BoundedContext: doc.BoundedContext(),
		Tables:         ordered,
		Statements:     stmts,
		SQL:            ddl.Join(stmts),
		Diagnostics:    diags,
		Deferred:       deferred,
	}

	if diags.HasErrors() && !opts.TolerateErrors {
		return result, &Error{Diagnostics: diags}
	}
	return result, nil
}

func reportCycles(diags *diag.List, tables []*schema.Table, skipped []graph.Edge, policy appgen.CyclePolicy) {
	entityOf := make(map[string]string, len(tables))
	for _, t := range tables {
		entityOf[t.Name] = t.Entity
	}

	for _, e := range skipped {
		path := strings.Join(e.Cycle, " -> ")
		if policy == appgen.CycleDefer {
			diags.Warnf(diag.CodeReferenceCycle, entityOf[e.From], "",
				"tables reference each other (%s); foreign keys are attached after all tables are created", path)
			continue
		}
		diags.Errorf(diag.CodeReferenceCycle, entityOf[e.From], "",
			"tables reference each other (%s)", path).Hint =
			"Break the cycle by moving one relation to the inverse side (mappedBy), or rerun with --cycles defer."
	}
}
