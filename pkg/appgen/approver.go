package appgen

import "context"

// Approver confirms an apply before anything is sent to the database.
//
// Implementations:
//   - ForcedApprover: prints what will happen and approves (--yes, scripts)
//   - InteractiveApprover: asks on the terminal
type Approver interface {
	// RequestApproval asks whether statements may be executed against target.
	// It returns false without error when the user declines.
	RequestApproval(ctx context.Context, target string, statements int) (bool, error)
}
