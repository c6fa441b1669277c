package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/appgen/pkg/appgen"
)

// InteractiveApprover asks on the console and approves on "y" or "yes".
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover.
func NewInteractiveApprover(input io.Reader, output io.Writer) appgen.Approver {
	return &InteractiveApprover{input: input, output: output}
}

// RequestApproval prompts once. Anything other than y/yes declines.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string, statements int) (bool, error) {
	fmt.Fprintf(a.output, "\nAbout to apply %d statement(s) to %s in one transaction.\n", statements, target)
	fmt.Fprint(a.output, "Proceed? [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		}
		fmt.Fprintln(a.output, "✗ Cancelled. Nothing was applied.")
		return false, nil
	}
}

var _ appgen.Approver = (*InteractiveApprover)(nil)
