// Package diag collects structured warnings and errors produced while
// compiling a specification. Nothing in the compiler is dropped silently:
// every absorbed condition becomes a Diagnostic in an ordered List.
package diag

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Code identifies the kind of condition a diagnostic reports.
type Code string

const (
	CodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	CodeMissingPrimaryKey   Code = "MISSING_PRIMARY_KEY"
	CodeReferenceCycle      Code = "REFERENCE_CYCLE"
	CodeDuplicateTable      Code = "DUPLICATE_TABLE"
	CodeDuplicateColumn     Code = "DUPLICATE_COLUMN"
	CodeDuplicatePrimaryKey Code = "DUPLICATE_PRIMARY_KEY"
	CodeIncompleteRelation  Code = "INCOMPLETE_RELATION"
)

// Diagnostic is one reported condition with enough context to locate and fix it.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     Code     `json:"code" yaml:"code"`
	Entity   string   `json:"entity,omitempty" yaml:"entity,omitempty"`
	Property string   `json:"property,omitempty" yaml:"property,omitempty"`
	Message  string   `json:"message" yaml:"message"`
	Hint     string   `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Location returns "Entity.property", "Entity" or "" depending on what is known.
func (d Diagnostic) Location() string {
	switch {
	case d.Entity != "" && d.Property != "":
		return d.Entity + "." + d.Property
	default:
		return d.Entity
	}
}

// String formats the diagnostic on one line, without the hint.
func (d Diagnostic) String() string {
	loc := d.Location()
	if loc == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s %s [%s]: %s", d.Severity, d.Code, loc, d.Message)
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends d.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Append appends every diagnostic of other.
func (l *List) Append(other List) {
	*l = append(*l, other...)
}

// Errorf appends an error-severity diagnostic.
func (l *List) Errorf(code Code, entity, property, format string, args ...interface{}) *Diagnostic {
	return l.addf(SeverityError, code, entity, property, format, args...)
}

// Warnf appends a warning-severity diagnostic.
func (l *List) Warnf(code Code, entity, property, format string, args ...interface{}) *Diagnostic {
	return l.addf(SeverityWarning, code, entity, property, format, args...)
}

// Reportf appends a diagnostic with the given severity.
func (l *List) Reportf(sev Severity, code Code, entity, property, format string, args ...interface{}) *Diagnostic {
	return l.addf(sev, code, entity, property, format, args...)
}

// addf returns a pointer into the list so callers can attach a hint.
// The pointer is only valid until the next append.
func (l *List) addf(sev Severity, code Code, entity, property, format string, args ...interface{}) *Diagnostic {
	*l = append(*l, Diagnostic{
		Severity: sev,
		Code:     code,
		Entity:   entity,
		Property: property,
		Message:  fmt.Sprintf(format, args...),
	})
	return &(*l)[len(*l)-1]
}

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity diagnostics in order.
func (l List) Errors() List {
	return l.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics in order.
func (l List) Warnings() List {
	return l.filter(SeverityWarning)
}

func (l List) filter(sev Severity) List {
	var out List
	for _, d := range l {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Codes returns the code of every diagnostic in order.
func (l List) Codes() []Code {
	codes := make([]Code, 0, len(l))
	for _, d := range l {
		codes = append(codes, d.Code)
	}
	return codes
}

// String renders the list as numbered lines, including hints.
func (l List) String() string {
	var b strings.Builder
	for i, d := range l {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, d)
		if d.Hint != "" {
			fmt.Fprintf(&b, "     Hint: %s\n", d.Hint)
		}
	}
	return b.String()
}
