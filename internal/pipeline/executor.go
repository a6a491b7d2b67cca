package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/mgijax/agrexport/internal/artifact"
	"github.com/mgijax/agrexport/internal/collab"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/logging"
	"github.com/mgijax/agrexport/internal/part"
	"github.com/mgijax/agrexport/internal/policy"
	"github.com/mgijax/agrexport/internal/run"
	"github.com/spf13/afero"
)

// Executor runs the enabled stages for one part at a time.
type Executor struct {
	cfg    run.Config
	fs     afero.Fs
	collab Collaborators
	policy *policy.Policy
	logger *logging.Logger
}

// NewExecutor creates an Executor. The policy is shared with the driver so
// warnings are counted across the whole run.
func NewExecutor(cfg run.Config, fs afero.Fs, c Collaborators, p *policy.Policy, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if p == nil {
		p = policy.New(logger)
	}
	return &Executor{cfg: cfg, fs: fs, collab: c, policy: p, logger: logger}
}

// stageContext is what every stage function sees.
type stageContext struct {
	desc   part.Descriptor
	target string
	logger *logging.Logger
}

type stageFunc func(ctx context.Context, sc stageContext) error

// Execute runs the enabled stages for d in fixed order. The only error it
// returns is a fatal one; warnings have already been logged.
func (e *Executor) Execute(ctx context.Context, d part.Descriptor) error {
	logger := e.logger.WithPart(d.Code)
	target := artifact.Path(d, e.cfg)

	if d.Behavior().Inert {
		logger.Info("no generation mechanism; skipping all stages",
			"file_type", d.FileType, "kind", d.Kind.String(), "file", target)
		return nil
	}

	steps := []struct {
		stage run.Stage
		fn    stageFunc
	}{
		{run.StageGenerate, e.generate},
		{run.StageValidate, e.validate},
		{run.StageReport, e.report},
		{run.StageUpload, e.upload},
		{run.StageDistribute, e.distribute},
	}

	for _, s := range steps {
		if !e.cfg.Stages.Has(s.stage) {
			continue
		}
		sc := stageContext{desc: d, target: target, logger: logger.WithStage(s.stage.String())}
		if err := s.fn(ctx, sc); err != nil {
			return err
		}
	}
	return nil
}

// generateMode is Fatal unless the run asked to keep going.
func (e *Executor) generateMode() policy.Mode {
	if e.cfg.KeepGoing {
		return policy.Warning
	}
	return policy.Fatal
}

func (e *Executor) generate(ctx context.Context, sc stageContext) error {
	d := sc.desc
	switch d.Behavior().Generate {
	case part.GenerateFetch:
		sc.logger.Info("fetching "+d.FileType, "url", d.Generator.URL, "file", sc.target, "dry_run", e.cfg.DryRun)
		if e.cfg.DryRun {
			return nil
		}
		err := e.collab.Fetcher.Fetch(ctx, d.Generator.URL, sc.target)
		return e.policy.Handle(err, e.generateMode(), "fetch failed", "part", d.Code, "file", sc.target)

	case part.GenerateCommand:
		sc.logger.Info("generating "+d.FileType,
			"command", strings.Join(d.Generator.Command, " "), "file", sc.target, "dry_run", e.cfg.DryRun)
		if e.cfg.DryRun {
			return nil
		}
		err := e.collab.Generator.Generate(ctx, d, sc.target)
		return e.policy.Handle(err, e.generateMode(), "generator failed", "part", d.Code, "file", sc.target)
	}
	return nil
}

func (e *Executor) validate(ctx context.Context, sc stageContext) error {
	d := sc.desc
	if !d.Behavior().Validate {
		return nil
	}
	if d.SchemaPath == "" {
		sc.logger.Warn("no schema for "+d.FileType+"; not validating", "file", sc.target)
		return nil
	}

	sc.logger.Info("validating "+d.FileType, "schema", d.SchemaPath, "file", sc.target, "dry_run", e.cfg.DryRun)
	if e.cfg.DryRun {
		return nil
	}
	err := e.collab.Validator.Validate(ctx, d.SchemaPath, sc.target)
	return e.policy.Handle(err, policy.Fatal, "validation failed", "part", d.Code, "file", sc.target)
}

func (e *Executor) report(_ context.Context, sc stageContext) error {
	d := sc.desc
	sc.logger.Info("reporting on "+d.FileType, "file", sc.target, "dry_run", e.cfg.DryRun)
	if e.cfg.DryRun {
		return nil
	}

	size, count, err := e.measure(sc.target, d.ReportPattern)
	if err != nil {
		return e.policy.Handle(err, policy.Warning, "report failed", "part", d.Code, "file", sc.target)
	}
	sc.logger.Info(d.FileType+" size", "bytes", size)
	if d.ReportPattern != "" {
		sc.logger.Info(d.FileType+" records", "count", count, "pattern", d.ReportPattern)
	}
	return nil
}

// measure returns the byte length of path and, when pattern is set, the
// number of lines matching it.
func (e *Executor) measure(path, pattern string) (int64, int, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return 0, 0, errors.NewResourceError("stat artifact", errors.Join(errors.ErrArtifactMissing, err)).WithPath(path)
	}
	if pattern == "" {
		return info.Size(), 0, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return info.Size(), 0, errors.NewConfigurationError("invalid report pattern").WithCause(err)
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return info.Size(), 0, errors.NewResourceError("open artifact", err).WithPath(path)
	}
	defer f.Close()

	count := 0
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 && re.Match(trimEOL(line)) {
			count++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return info.Size(), count, errors.NewResourceError("read artifact", err).WithPath(path)
		}
	}
	return info.Size(), count, nil
}

// trimEOL drops one trailing "\n" or "\r\n".
func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

func (e *Executor) upload(ctx context.Context, sc stageContext) error {
	d := sc.desc
	field := collab.FieldName(e.cfg.ReleaseVersion, d.AllianceFileType, e.cfg.Organism)
	sc.logger.Info("uploading "+d.FileType, "field", field, "file", sc.target, "dry_run", e.cfg.DryRun)
	if e.cfg.DryRun {
		return nil
	}

	token, err := e.collab.ReadToken()
	if err != nil {
		return e.policy.Handle(err, policy.Fatal, "no upload token", "part", d.Code)
	}
	err = e.collab.Submitter.Submit(ctx, token, field, sc.target)
	return e.policy.Handle(err, policy.Fatal, "upload failed", "part", d.Code, "field", field)
}

func (e *Executor) distribute(_ context.Context, sc stageContext) error {
	d := sc.desc
	base := artifact.BaseName(d, e.cfg)
	sc.logger.Info("distributing "+d.FileType, "name", base, "dir", e.cfg.DistributionDir, "dry_run", e.cfg.DryRun)
	if e.cfg.DryRun {
		return nil
	}

	published, err := e.collab.Distributor.Distribute(sc.target, base)
	if err := e.policy.Handle(err, policy.Fatal, "distribute failed", "part", d.Code); err != nil {
		return err
	}
	if published != "" {
		sc.logger.Info("published "+d.FileType, "file", published)
	}
	return nil
}
