package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for appgen.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether appgen should prompt.
//
// Returns ModeNonInteractive if:
//   - APPGEN_NON_INTERACTIVE=1 is set
//   - CI is set
//   - stdin or stdout is not a terminal
func DetectMode() Mode {
	if os.Getenv("APPGEN_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports whether DetectMode returns ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// UseColor reports whether output written to f should be styled.
// NO_COLOR disables styling regardless of the terminal.
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
