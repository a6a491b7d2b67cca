// Package policy decides what a collaborator failure means for the run:
// stop everything, or log a warning and carry on.
package policy

import (
	"slices"

	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/logging"
)

// Mode is the per-call-site escalation choice.
type Mode int

const (
	// Fatal logs an error and ends the run. It is the default for every stage.
	Fatal Mode = iota
	// Warning logs a warning and lets the run continue.
	Warning
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Fatal:
		return "fatal"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Policy applies escalation modes and counts the warnings it let through.
// A run is single threaded, so Policy is not safe for concurrent use.
type Policy struct {
	logger   *logging.Logger
	warnings int
}

// New returns a Policy that reports through logger.
func New(logger *logging.Logger) *Policy {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Policy{logger: logger}
}

// Handle inspects the outcome of one collaborator call. A nil err returns
// nil. Otherwise Warning logs and returns nil, and Fatal logs and returns a
// *errors.FatalError which the caller must return immediately.
func (p *Policy) Handle(err error, mode Mode, msg string, args ...any) error {
	if err == nil {
		return nil
	}

	fields := append(slices.Clone(args), "status", errors.ExitStatus(err), "error", err.Error())
	if mode == Warning {
		p.warnings++
		p.logger.Warn(msg, fields...)
		return nil
	}

	p.logger.Error(msg, fields...)
	return errors.NewFatalError(err)
}

// Warnings returns how many failures were downgraded so far.
func (p *Policy) Warnings() int {
	return p.warnings
}
