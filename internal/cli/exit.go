package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	errs "github.com/matzehuels/elementmerge/pkg/errors"
)

// Exit codes beyond the generic failure, so scripts can tell a refused
// selection from a broken store.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInvalid     = 3
	ExitNotFound    = 4
	ExitStore       = 5
	ExitInterrupted = 130
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errs.IsNotFound(err):
		return ExitNotFound
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidSelection, errs.ErrCodeInvalidName:
		return ExitUsage
	case errs.ErrCodeInvalidModel:
		return ExitInvalid
	case errs.ErrCodeStore:
		return ExitStore
	}
	return ExitFailure
}

// ReportError writes err to w the way the other status lines look. Selection
// errors carry a message meant for the user and are shown as a warning; for
// everything else the underlying cause follows on its own line. Interrupts
// print nothing.
func ReportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	if errs.Is(err, errs.ErrCodeInvalidSelection) {
		fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(errs.UserMessage(err)))
		return
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errs.UserMessage(err))
	var e *errs.Error
	if errors.As(err, &e) && e.Cause != nil {
		fmt.Fprintln(w, "  "+StyleDim.Render(e.Cause.Error()))
	}
}
