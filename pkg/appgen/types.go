package appgen

import "fmt"

// Mode selects which artifacts the generate command emits.
type Mode string

const (
	// ModeSchema emits the relational schema only.
	ModeSchema Mode = "schema"
	// ModeScaffold emits the Go source scaffold only.
	ModeScaffold Mode = "scaffold"
	// ModeAll emits both the schema and the scaffold.
	ModeAll Mode = "all"
)

// ParseMode converts a flag or config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSchema, ModeScaffold, ModeAll:
		return Mode(s), nil
	case "":
		return ModeSchema, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (expected schema, scaffold or all)", ErrInvalidConfig, s)
}

// IncludesSchema reports whether the mode emits schema.sql.
func (m Mode) IncludesSchema() bool {
	return m == ModeSchema || m == ModeAll
}

// IncludesScaffold reports whether the mode emits Go sources.
func (m Mode) IncludesScaffold() bool {
	return m == ModeScaffold || m == ModeAll
}

// UnresolvedPolicy decides how foreign keys without a usable target are reported.
type UnresolvedPolicy string

const (
	// UnresolvedError reports unresolved references as errors.
	UnresolvedError UnresolvedPolicy = "error"
	// UnresolvedWarn reports unresolved references as warnings.
	UnresolvedWarn UnresolvedPolicy = "warn"
)

// ParseUnresolvedPolicy converts a flag or config value into an UnresolvedPolicy.
func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch UnresolvedPolicy(s) {
	case UnresolvedError, UnresolvedWarn:
		return UnresolvedPolicy(s), nil
	case "":
		return UnresolvedError, nil
	}
	return "", fmt.Errorf("%w: unknown unresolved policy %q (expected error or warn)", ErrInvalidConfig, s)
}

// CyclePolicy decides what happens when tables reference each other in a cycle.
type CyclePolicy string

const (
	// CycleReject reports reference cycles as errors.
	CycleReject CyclePolicy = "reject"
	// CycleDefer creates all tables first and attaches foreign keys afterward.
	CycleDefer CyclePolicy = "defer"
)

// ParseCyclePolicy converts a flag or config value into a CyclePolicy.
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch CyclePolicy(s) {
	case CycleReject, CycleDefer:
		return CyclePolicy(s), nil
	case "":
		return CycleReject, nil
	}
	return "", fmt.Errorf("%w: unknown cycle policy %q (expected reject or defer)", ErrInvalidConfig, s)
}
