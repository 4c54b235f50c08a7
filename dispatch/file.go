package dispatch

import (
	"context"
	"fmt"
	"os"

	"github.com/fatcatfablab/ticketgen/types"
)

// File writes the hex ticket to a local path, one line, trailing
// newline. A write failure keeps the run alive: the agent session
// stays open so the operator can retry by hand.
type File struct {
	path      string
	exitAfter bool
}

func NewFile(path string, exitAfter bool) *File {
	return &File{path: path, exitAfter: exitAfter}
}

func (f *File) Dispatch(_ context.Context, t types.Ticket) (types.Outcome, error) {
	out, err := os.Create(f.path)
	if err != nil {
		return types.SkippedContinue, fmt.Errorf("error creating %s: %w", f.path, err)
	}

	if _, err := fmt.Fprintln(out, t.Hex()); err != nil {
		out.Close()
		return types.SkippedContinue, fmt.Errorf("error writing %s: %w", f.path, err)
	}

	if err := out.Close(); err != nil {
		return types.SkippedContinue, fmt.Errorf("error closing %s: %w", f.path, err)
	}

	if f.exitAfter {
		return types.DeliveredTerminate, nil
	}
	return types.DeliveredContinue, nil
}
