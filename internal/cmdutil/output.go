package cmdutil

import (
	"errors"
	"fmt"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/output"
)

// ReportError prints err and returns it as an ExitError marked as printed,
// carrying the exit code of its error class.
func ReportError(msg string, err error) error {
	PrintError(msg, err)
	exitErr := oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	exitErr.Printed = true
	output.Debug("command failed", "exit", exitErr.Code, "reason", oerrors.ExitCodeName(exitErr.Code))
	return exitErr
}

// PrintError prints an error in a user-friendly format.
// Multi-error values get one log line per entry.
func PrintError(msg string, err error) {
	var (
		mismatch *oerrors.MismatchError
		all      oerrors.CorpusErrors
		single   *oerrors.CorpusValidationError
		detail   *oerrors.DetailError
	)

	switch {
	case errors.As(err, &mismatch):
		output.Error(msg, "mismatches", len(mismatch.Mismatches))
		for _, m := range mismatch.Mismatches {
			output.Error(m.String(), "kind", m.Kind)
		}
		if len(mismatch.Fields(oerrors.UndescribedField)) > 0 {
			output.Info(fmt.Sprintf("Please add the missing descriptions to file `%s`", mismatch.DescriptionsPath))
		}
	case errors.As(err, &all):
		output.Error(msg, "violations", len(all), "files", countFiles(all))
		for _, e := range all {
			output.Error(e.Error(), "kind", e.Kind)
		}
	case errors.As(err, &single):
		output.Error(msg, "kind", single.Kind)
		output.Details(single.Error())
	case errors.As(err, &detail):
		output.Error(msg)
		output.Details(detail.Error())
	default:
		output.Error(msg, "error", err)
	}
}

func countFiles(errs oerrors.CorpusErrors) int {
	seen := make(map[string]struct{})
	for _, e := range errs {
		seen[e.File] = struct{}{}
	}
	return len(seen)
}
