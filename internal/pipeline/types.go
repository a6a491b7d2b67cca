package pipeline

import (
	"context"

	"github.com/mgijax/agrexport/internal/part"
)

// Generator captures a standard part's generator output into dest.
type Generator interface {
	Generate(ctx context.Context, d part.Descriptor, dest string) error
}

// Fetcher downloads and decompresses a remote resource into dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Validator checks a data file against a schema.
type Validator interface {
	Validate(ctx context.Context, schema, data string) error
}

// Submitter uploads a file under a multipart field name.
type Submitter interface {
	Submit(ctx context.Context, token, field, path string) error
}

// Distributor publishes a file and returns its final path.
type Distributor interface {
	Distribute(src, baseName string) (string, error)
}

// Collaborators are the external systems the stages call.
type Collaborators struct {
	Generator   Generator
	Fetcher     Fetcher
	Validator   Validator
	Submitter   Submitter
	Distributor Distributor
	// ReadToken returns the bearer token for uploads. It is called once
	// per upload so a missing token only matters when upload runs.
	ReadToken func() (string, error)
}

// Result summarizes a finished or aborted run.
type Result struct {
	RunID string
	// Dir is the versioned output directory.
	Dir       string
	Processed int
	Skipped   int
	Warnings  int
}
