// Package run defines the immutable configuration of a single export run.
package run

import (
	"strconv"

	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/part"
)

// DefaultPrefix is the file name prefix used when none is configured.
const DefaultPrefix = "MGI"

// Config is the run configuration. It is built once by NewConfig and
// passed by value; nothing modifies it afterwards.
type Config struct {
	// OutputDir is the parent of the versioned output directory.
	OutputDir string
	// Prefix starts every artifact name, e.g. "MGI".
	Prefix         string
	SchemaVersion  string
	ReleaseVersion string
	// ReleaseCount is appended to the output directory when set.
	ReleaseCount string

	Stages StageSet
	Parts  part.Selection
	DryRun bool
	// KeepGoing downgrades generate failures to warnings.
	KeepGoing bool

	// Organism is the provider identifier in upload field names, e.g. "MGI".
	Organism string

	LogFile          string
	TokenFile        string
	SubmitURL        string
	ValidatorCommand string
	SchemaDir        string
	DistributionDir  string
	GeneratorBinDir  string
	Interpreter      string
}

// NewConfig validates c and returns it. Schema version and release version
// are required whatever stages are requested.
func NewConfig(c Config) (Config, error) {
	if c.SchemaVersion == "" {
		return Config{}, errors.NewConfigurationError("a schema version must be configured").
			WithField("alliance.schema_version").
			WithCause(errors.ErrMissingSchemaVersion)
	}
	if c.ReleaseVersion == "" {
		return Config{}, errors.NewConfigurationError("a release version must be configured").
			WithField("alliance.release_version").
			WithCause(errors.ErrMissingReleaseVersion)
	}
	if c.ReleaseCount != "" {
		if n, err := strconv.Atoi(c.ReleaseCount); err != nil || n < 0 {
			return Config{}, errors.NewConfigurationError("release count must be a non-negative integer").
				WithField("count").
				WithCause(errors.ErrInvalidInput)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Organism == "" {
		c.Organism = c.Prefix
	}
	return c, nil
}
