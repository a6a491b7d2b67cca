package pipeline

import (
	"github.com/mgijax/agrexport/internal/logging"
	"github.com/spf13/afero"
)

// Option configures a Pipeline.
type Option func(*pipelineConfig)

// pipelineConfig holds optional settings for the Pipeline.
type pipelineConfig struct {
	logger *logging.Logger
	fs     afero.Fs
	collab *Collaborators
	runID  string
}

// WithLogger sets the run log. Defaults to a logger that discards output.
func WithLogger(l *logging.Logger) Option {
	return func(c *pipelineConfig) {
		c.logger = l
	}
}

// WithFs sets the filesystem used for the output directory and the report
// stage. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(c *pipelineConfig) {
		c.fs = fs
	}
}

// WithCollaborators replaces the external collaborators.
func WithCollaborators(collab Collaborators) Option {
	return func(c *pipelineConfig) {
		c.collab = &collab
	}
}

// WithRunID fixes the run correlation id instead of generating one.
func WithRunID(id string) Option {
	return func(c *pipelineConfig) {
		c.runID = id
	}
}
