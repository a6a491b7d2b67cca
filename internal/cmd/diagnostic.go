package cmd

import (
	"fmt"

	"github.com/mgijax/agrexport/internal/errors"
)

// Diagnostic renders the one-line message printed before a non-zero exit.
// Configuration problems point at --help; a fatal run names the status the
// failing collaborator reported.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	sev := errors.GetSeverity(err)
	var fatal *errors.FatalError
	switch {
	case errors.IsConfiguration(err):
		return fmt.Sprintf("agrexport: %s: %v\nRun 'agrexport --help' for usage.", sev, err)
	case errors.IsFatal(err) && errors.As(err, &fatal):
		return fmt.Sprintf("agrexport: %s: run stopped (status %d): %v", sev, errors.ExitStatus(err), fatal.Unwrap())
	default:
		return fmt.Sprintf("agrexport: %s: %v", sev, err)
	}
}
