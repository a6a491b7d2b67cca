package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/mgijax/agrexport/internal/artifact"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/logging"
	"github.com/mgijax/agrexport/internal/part"
	"github.com/mgijax/agrexport/internal/policy"
	"github.com/mgijax/agrexport/internal/run"
	"github.com/spf13/afero"
)

// Pipeline drives one export run over the whole registry.
// It is single threaded; parts and stages never overlap.
type Pipeline struct {
	cfg      run.Config
	registry *part.Registry
	fs       afero.Fs
	logger   *logging.Logger
	policy   *policy.Policy
	executor *Executor
	runID    string
}

// New creates a Pipeline for cfg over registry.
func New(cfg run.Config, registry *part.Registry, opts ...Option) (*Pipeline, error) {
	if registry == nil {
		return nil, errors.New("pipeline: registry is required")
	}

	pc := &pipelineConfig{}
	for _, opt := range opts {
		opt(pc)
	}
	if pc.logger == nil {
		pc.logger = logging.NopLogger()
	}
	if pc.fs == nil {
		pc.fs = afero.NewOsFs()
	}
	if pc.runID == "" {
		pc.runID = uuid.NewString()
	}
	if pc.collab == nil {
		c := DefaultCollaborators(cfg, pc.fs, pc.logger)
		pc.collab = &c
	}

	logger := pc.logger.WithRun(pc.runID)
	pol := policy.New(logger)

	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		fs:       pc.fs,
		logger:   logger,
		policy:   pol,
		executor: NewExecutor(cfg, pc.fs, *pc.collab, pol, logger),
		runID:    pc.runID,
	}, nil
}

// RunID returns the correlation id attached to every log message.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run processes every part in registry order. A fatal failure stops the
// run immediately and is returned along with the partial result.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: p.runID, Dir: artifact.Dir(p.cfg)}

	p.logger.Info("Starting",
		"schema", p.cfg.SchemaVersion,
		"release", p.cfg.ReleaseVersion,
		"stages", p.cfg.Stages.String(),
		"parts", p.cfg.Parts.String(),
		"dry_run", p.cfg.DryRun,
		"dir", res.Dir,
	)

	if err := p.fs.MkdirAll(res.Dir, 0755); err != nil {
		rerr := errors.NewResourceError("create output directory", err).WithPath(res.Dir)
		return res, p.policy.Handle(rerr, policy.Fatal, "cannot create output directory", "dir", res.Dir)
	}

	// Select keeps registry order, so the selected parts are a subsequence
	// of All and one cursor walks both.
	selected := p.registry.Select(p.cfg.Parts)
	next := 0
	for _, d := range p.registry.All() {
		if next >= len(selected) || selected[next].Code != d.Code {
			p.logger.Info("skipping "+d.FileType, "part", d.Code)
			res.Skipped++
			continue
		}
		next++

		if err := p.executor.Execute(ctx, d); err != nil {
			res.Warnings = p.policy.Warnings()
			return res, err
		}
		res.Processed++
	}

	res.Warnings = p.policy.Warnings()
	p.logger.Info("Finished",
		"processed", res.Processed,
		"skipped", res.Skipped,
		"warnings", res.Warnings,
	)
	return res, nil
}
