// Package errors provides the error taxonomy for export runs: configuration
// problems, failed collaborators, unavailable resources, and the fatal
// wrapper that stops a run.
//
// # Error Types
//
//   - ConfigurationError: malformed or incomplete command surface
//   - ExternalCommandError: a generator, validator, upload, or distribute
//     operation reported failure
//   - ResourceError: a directory, token file, or target file was unusable
//   - FatalError: the cause that the error policy decided ends the run
//
// # Usage
//
//	err := errors.NewExternalCommandError("generate", cause).
//	    WithPart("g").
//	    WithExitStatus(2)
//
//	var cmdErr *errors.ExternalCommandError
//	if errors.As(err, &cmdErr) { ... }
//
//	os.Exit(errors.ExitStatus(err))
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors that are logged and then ignored.
	SeverityWarning Severity = iota
	// SeverityError is for errors that stop the current operation.
	SeverityError
	// SeverityCritical is for errors that stop the whole run.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration sentinel errors
var (
	// ErrMissingSchemaVersion indicates the schema version was not configured.
	ErrMissingSchemaVersion = New("schema version is required")
	// ErrMissingReleaseVersion indicates the release version was not configured.
	ErrMissingReleaseVersion = New("release version is required")
	// ErrUnknownFlag indicates the command line contained an unrecognized flag.
	ErrUnknownFlag = New("unknown flag")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// Collaborator sentinel errors
var (
	// ErrNonZeroExit indicates an external program exited with a non-zero status.
	ErrNonZeroExit = New("non-zero exit status")
	// ErrUploadRejected indicates the submission endpoint returned a non-2xx status.
	ErrUploadRejected = New("upload rejected")
	// ErrFetchFailed indicates a remote resource could not be downloaded.
	ErrFetchFailed = New("fetch failed")
)

// Resource sentinel errors
var (
	// ErrTokenMissing indicates the bearer token file is missing or empty.
	ErrTokenMissing = New("token file missing or empty")
	// ErrArtifactMissing indicates the target file for a part does not exist.
	ErrArtifactMissing = New("artifact not found")
)

// ErrFatal marks an error that ended the run.
var ErrFatal = New("fatal")

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// ConfigurationError
// -----------------------------------------------------------------------------

// ConfigurationError represents a malformed or incomplete command surface.
// It is always reported before any stage executes.
//
// Example:
//
//	err := errors.NewConfigurationError("schema version is required").
//	    WithField("alliance.schema_version").
//	    WithCause(errors.ErrMissingSchemaVersion)
type ConfigurationError struct {
	baseError
	Field string
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			message:  message,
			severity: SeverityCritical,
		},
	}
}

// WithField adds the offending flag or config key.
func (e *ConfigurationError) WithField(field string) *ConfigurationError {
	e.Field = field
	return e
}

// WithCause adds a cause to the error.
func (e *ConfigurationError) WithCause(cause error) *ConfigurationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	return e.format("configuration error", parts)
}

// Is checks if this error matches the target.
func (e *ConfigurationError) Is(target error) bool {
	if _, ok := target.(*ConfigurationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ExternalCommandError
// -----------------------------------------------------------------------------

// ExternalCommandError represents a failed collaborator: a generator or
// validator process, an upload, a fetch, or a distribute step.
//
// Example:
//
//	err := errors.NewExternalCommandError("validate", exitErr).
//	    WithPart("a").WithExitStatus(1)
//	fmt.Println(err) // "external command error [op=validate, part=a, status=1]: validate failed: exit status 1"
type ExternalCommandError struct {
	baseError
	Operation  string
	Part       string
	ExitStatus int
	Output     string
}

// NewExternalCommandError creates a new ExternalCommandError for operation.
func NewExternalCommandError(operation string, cause error) *ExternalCommandError {
	return &ExternalCommandError{
		baseError: baseError{
			message:  operation + " failed",
			cause:    cause,
			severity: SeverityError,
		},
		Operation:  operation,
		ExitStatus: exitCodeOf(cause),
	}
}

// WithPart adds the part code to the error context.
func (e *ExternalCommandError) WithPart(code string) *ExternalCommandError {
	e.Part = code
	return e
}

// WithExitStatus overrides the recorded exit status.
func (e *ExternalCommandError) WithExitStatus(status int) *ExternalCommandError {
	e.ExitStatus = status
	return e
}

// WithOutput attaches collaborator output, e.g. a response body.
func (e *ExternalCommandError) WithOutput(output string) *ExternalCommandError {
	e.Output = output
	return e
}

// Error returns the formatted error message.
func (e *ExternalCommandError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Operation))
	}
	if e.Part != "" {
		parts = append(parts, fmt.Sprintf("part=%s", e.Part))
	}
	if e.ExitStatus != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.ExitStatus))
	}
	msg := e.format("external command error", parts)
	if e.Output != "" {
		msg += "\nOutput: " + e.Output
	}
	return msg
}

// Is checks if this error matches the target.
func (e *ExternalCommandError) Is(target error) bool {
	if _, ok := target.(*ExternalCommandError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ResourceError
// -----------------------------------------------------------------------------

// ResourceError represents an unusable local resource: the output
// directory, the token file, or a target file during report.
//
// Example:
//
//	err := errors.NewResourceError("read token", err).WithPath(tokenFile)
type ResourceError struct {
	baseError
	Operation string
	Path      string
}

// NewResourceError creates a new ResourceError.
func NewResourceError(operation string, cause error) *ResourceError {
	return &ResourceError{
		baseError: baseError{
			message:  operation + " failed",
			cause:    cause,
			severity: SeverityError,
		},
		Operation: operation,
	}
}

// WithPath adds the resource path to the error context.
func (e *ResourceError) WithPath(path string) *ResourceError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *ResourceError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return e.format("resource error", parts)
}

// Is checks if this error matches the target.
func (e *ResourceError) Is(target error) bool {
	if _, ok := target.(*ResourceError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// FatalError
// -----------------------------------------------------------------------------

// FatalError wraps the error that ended a run. Callers stop processing as
// soon as they see one; the binary exits with status 1.
type FatalError struct {
	baseError
}

// NewFatalError wraps cause as run-ending.
func NewFatalError(cause error) *FatalError {
	return &FatalError{
		baseError: baseError{
			message:  "run aborted",
			cause:    cause,
			severity: SeverityCritical,
		},
	}
}

// Is checks if this error matches the target.
func (e *FatalError) Is(target error) bool {
	if _, ok := target.(*FatalError); ok {
		return true
	}
	if target == ErrFatal {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsFatal reports whether err ended the run.
func IsFatal(err error) bool {
	return err != nil && Is(err, ErrFatal)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return As(err, &cfgErr)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors outside this taxonomy.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityWarning
	}

	var fatal *FatalError
	if As(err, &fatal) {
		return fatal.Severity()
	}
	var cfgErr *ConfigurationError
	if As(err, &cfgErr) {
		return cfgErr.Severity()
	}
	var cmdErr *ExternalCommandError
	if As(err, &cmdErr) {
		return cmdErr.Severity()
	}
	var resErr *ResourceError
	if As(err, &resErr) {
		return resErr.Severity()
	}
	return SeverityError
}

// ExitStatus returns the status a failed operation reported. A nil error is
// 0, an exec.ExitError or other exit coder carries its own code, and anything else is 1.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *ExternalCommandError
	if As(err, &cmdErr) && cmdErr.ExitStatus != 0 {
		return cmdErr.ExitStatus
	}
	if code := exitCodeOf(err); code != 0 {
		return code
	}
	return 1
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

func exitCodeOf(err error) int {
	var exitErr exitCoder
	if As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 0
}
