// Package ui asks for confirmation before appgen changes a database.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/appgen/pkg/appgen"
)

// ForcedApprover approves without asking. It still prints what is about to
// happen so that logs show the target. Used with --yes and in scripts.
type ForcedApprover struct {
	output io.Writer
}

// NewForcedApprover creates a ForcedApprover writing to output.
func NewForcedApprover(output io.Writer) appgen.Approver {
	return &ForcedApprover{output: output}
}

// RequestApproval prints the target and approves unless ctx is done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string, statements int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "Applying %d statement(s) to %s\n", statements, target)
	return true, nil
}

var _ appgen.Approver = (*ForcedApprover)(nil)
