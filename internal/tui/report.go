package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/appgen/internal/compiler"
	"github.com/vvka-141/appgen/internal/diag"
)

// Report formats compiler output for people. Styled reports use lipgloss
// colors; plain reports are stable text suitable for logs and tests.
type Report struct {
	styled bool
}

// NewReport creates a Report.
func NewReport(styled bool) *Report {
	return &Report{styled: styled}
}

func (r *Report) render(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// Diagnostics renders one block per diagnostic, followed by its hint.
func (r *Report) Diagnostics(list diag.List) string {
	var b strings.Builder
	for _, d := range list {
		symbol, style := SymbolWarning, WarningStyle
		if d.Severity == diag.SeverityError {
			symbol, style = SymbolCross, ErrorStyle
		}

		b.WriteString(r.render(style, fmt.Sprintf("%s %s %s", symbol, d.Severity, d.Code)))
		if loc := d.Location(); loc != "" {
			b.WriteString(" ")
			b.WriteString(r.render(SubtitleStyle, "["+loc+"]"))
		}
		b.WriteString(": ")
		b.WriteString(d.Message)
		b.WriteString("\n")
		if d.Hint != "" {
			b.WriteString("    ")
			b.WriteString(r.render(HintStyle, "hint: "+d.Hint))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Summary renders the one-line outcome of a compilation.
func (r *Report) Summary(res *compiler.Result) string {
	errs := len(res.Diagnostics.Errors())
	warns := len(res.Diagnostics.Warnings())

	line := fmt.Sprintf("%s: %d table(s), %d statement(s), %d error(s), %d warning(s)",
		res.BoundedContext, len(res.Tables), len(res.Statements), errs, warns)
	if res.Deferred {
		line += ", foreign keys deferred"
	}

	switch {
	case errs > 0:
		return r.render(ErrorStyle, SymbolCross+" "+line)
	case warns > 0:
		return r.render(WarningStyle, SymbolWarning+" "+line)
	default:
		return r.render(SuccessStyle, SymbolCheck+" "+line)
	}
}

// Tables renders the emission order, one table per line with its dependencies.
func (r *Report) Tables(res *compiler.Result) string {
	var b strings.Builder
	for i, t := range res.Tables {
		fmt.Fprintf(&b, "%3d. %s", i+1, r.render(SelectedStyle, t.Name))
		if deps := t.DependsOn(); len(deps) > 0 {
			b.WriteString(" ")
			b.WriteString(r.render(SubtitleStyle, SymbolArrowRight+" "+strings.Join(deps, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}
