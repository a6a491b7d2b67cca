package config

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/mgijax/agrexport/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "alliance.organism")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// identifierRegex validates prefixes and organism identifiers, which end up
// in file names and multipart field names
var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// versionRegex validates schema and release versions, which end up in paths
var versionRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validate checks the Config for invalid values and returns all validation errors found.
// Missing schema and release versions are not reported here; they are
// checked once flags have been applied.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAlliance()...)
	errors = append(errors, c.validateDownloads()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateAlliance validates the AllianceConfig
func (c *Config) validateAlliance() []ValidationError {
	var errors []ValidationError
	a := c.Alliance

	versions := []struct {
		field, value string
	}{
		{"alliance.schema_version", a.SchemaVersion},
		{"alliance.release_version", a.ReleaseVersion},
	}
	for _, v := range versions {
		if v.value != "" && !versionRegex.MatchString(v.value) {
			errors = append(errors, ValidationError{
				Field:   v.field,
				Value:   v.value,
				Message: "must contain only letters, digits, '.', '_' and '-'",
			})
		}
	}

	idents := []struct {
		field, value string
	}{
		{"alliance.organism", a.Organism},
		{"alliance.file_prefix", a.FilePrefix},
	}
	for _, id := range idents {
		if !identifierRegex.MatchString(id.value) {
			errors = append(errors, ValidationError{
				Field:   id.field,
				Value:   id.value,
				Message: "must be a letter followed by letters or digits",
			})
		}
	}

	if a.SubmitURL != "" {
		u, err := url.Parse(a.SubmitURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "alliance.submit_url",
				Value:   a.SubmitURL,
				Message: "must be an absolute http or https URL",
			})
		}
	}

	return errors
}

// validateDownloads validates the DownloadsConfig
func (c *Config) validateDownloads() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Downloads.Endpoint) == "" {
		errors = append(errors, ValidationError{
			Field:   "downloads.endpoint",
			Value:   c.Downloads.Endpoint,
			Message: "must not be empty",
		})
	} else if strings.Contains(c.Downloads.Endpoint, "://") {
		errors = append(errors, ValidationError{
			Field:   "downloads.endpoint",
			Value:   c.Downloads.Endpoint,
			Message: "must be a host[:port] without a scheme",
		})
	}

	if strings.TrimSpace(c.Downloads.Bucket) == "" {
		errors = append(errors, ValidationError{
			Field:   "downloads.bucket",
			Value:   c.Downloads.Bucket,
			Message: "must not be empty",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.ToLower(strings.Join(logging.ValidLevels(), ", "))),
		})
	}

	if c.Logging.Format != "" && !slices.Contains(logging.ValidFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidFormats(), ", ")),
		})
	}

	return errors
}
