package config

import (
	"strings"
	"testing"

	"github.com/mgijax/agrexport/internal/logging"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate_Alliance(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "valid versions",
			modify: func(c *Config) { c.Alliance.SchemaVersion = "1.0.1.4"; c.Alliance.ReleaseVersion = "3.1.0" },
		},
		{
			name:      "schema version with slash",
			modify:    func(c *Config) { c.Alliance.SchemaVersion = "1.0/../x" },
			wantField: "alliance.schema_version",
		},
		{
			name:      "release version with space",
			modify:    func(c *Config) { c.Alliance.ReleaseVersion = "3 1" },
			wantField: "alliance.release_version",
		},
		{
			name:      "empty organism",
			modify:    func(c *Config) { c.Alliance.Organism = "" },
			wantField: "alliance.organism",
		},
		{
			name:      "prefix with underscore",
			modify:    func(c *Config) { c.Alliance.FilePrefix = "MGI_X" },
			wantField: "alliance.file_prefix",
		},
		{
			name:      "relative submit url",
			modify:    func(c *Config) { c.Alliance.SubmitURL = "/api/data/submit" },
			wantField: "alliance.submit_url",
		},
		{
			name:      "ftp submit url",
			modify:    func(c *Config) { c.Alliance.SubmitURL = "ftp://example.org/submit" },
			wantField: "alliance.submit_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assertSingleField(t, cfg.Validate(), tt.wantField)
		})
	}
}

func TestConfig_Validate_Downloads(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "empty endpoint",
			modify:    func(c *Config) { c.Downloads.Endpoint = "" },
			wantField: "downloads.endpoint",
		},
		{
			name:      "endpoint with scheme",
			modify:    func(c *Config) { c.Downloads.Endpoint = "https://s3.amazonaws.com" },
			wantField: "downloads.endpoint",
		},
		{
			name:      "empty bucket",
			modify:    func(c *Config) { c.Downloads.Bucket = " " },
			wantField: "downloads.bucket",
		},
		{
			name:   "local endpoint",
			modify: func(c *Config) { c.Downloads.Endpoint = "localhost:9000"; c.Downloads.UseSSL = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assertSingleField(t, cfg.Validate(), tt.wantField)
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantField string
	}{
		{name: "defaults", level: "info", format: "text"},
		{name: "upper case level", level: "DEBUG", format: "json"},
		{name: "empty", level: "", format: ""},
		{name: "bad level", level: "verbose", format: "text", wantField: "logging.level"},
		{name: "bad format", level: "info", format: "xml", wantField: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format
			assertSingleField(t, cfg.Validate(), tt.wantField)
		})
	}
}

func TestConfig_Validate_AcceptsLoggerLevels(t *testing.T) {
	for _, level := range logging.ValidLevels() {
		for _, format := range logging.ValidFormats() {
			cfg := Default()
			cfg.Logging.Level = strings.ToLower(level)
			cfg.Logging.Format = format
			assertSingleField(t, cfg.Validate(), "")
		}
	}
}

// assertSingleField checks that errs is empty when field is "", and
// otherwise holds exactly one error for field.
func assertSingleField(t *testing.T, errs []ValidationError, field string) {
	t.Helper()

	if field == "" {
		if len(errs) != 0 {
			t.Errorf("expected no errors, got: %v", errs)
		}
		return
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != field {
		t.Errorf("error field = %q, want %q", errs[0].Field, field)
	}
}
