package cmd

import (
	"github.com/mgijax/agrexport/internal/config"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/logging"
	"github.com/mgijax/agrexport/internal/part"
	"github.com/mgijax/agrexport/internal/pipeline"
	"github.com/mgijax/agrexport/internal/run"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// runOptions holds the root command's stage and run-mode flags.
type runOptions struct {
	generate   bool
	validate   bool
	report     bool
	upload     bool
	distribute bool
	parts      []string
	count      string
	dryRun     bool
	keepGoing  bool
}

func (o *runOptions) stages() run.StageSet {
	var s run.StageSet
	toggles := []struct {
		on    bool
		stage run.Stage
	}{
		{o.generate, run.StageGenerate},
		{o.validate, run.StageValidate},
		{o.report, run.StageReport},
		{o.upload, run.StageUpload},
		{o.distribute, run.StageDistribute},
	}
	for _, t := range toggles {
		if t.on {
			s = s.With(t.stage)
		}
	}
	return s
}

// buildRunConfig combines the file/env configuration with the flags.
func buildRunConfig(cfg *config.Config, o *runOptions) (run.Config, error) {
	sel, err := part.NewSelection(o.parts)
	if err != nil {
		return run.Config{}, errors.NewConfigurationError(err.Error()).
			WithField("parts").
			WithCause(errors.ErrInvalidInput)
	}

	return run.NewConfig(run.Config{
		OutputDir:        cfg.Output.Dir,
		Prefix:           cfg.Alliance.FilePrefix,
		SchemaVersion:    cfg.Alliance.SchemaVersion,
		ReleaseVersion:   cfg.Alliance.ReleaseVersion,
		ReleaseCount:     o.count,
		Stages:           o.stages(),
		Parts:            sel,
		DryRun:           o.dryRun,
		KeepGoing:        o.keepGoing,
		Organism:         cfg.Alliance.Organism,
		LogFile:          cfg.Logging.File,
		TokenFile:        cfg.Alliance.TokenFile,
		SubmitURL:        cfg.Alliance.SubmitURL,
		ValidatorCommand: cfg.Validator.Command,
		SchemaDir:        cfg.Validator.SchemaDir,
		DistributionDir:  cfg.Distribute.Dir,
		GeneratorBinDir:  cfg.Generator.BinDir,
		Interpreter:      cfg.Generator.Interpreter,
	})
}

// loadRegistry returns the configured catalog, or the built-in one.
func loadRegistry(cfg *config.Config) (*part.Registry, error) {
	if cfg.Catalog.File == "" {
		return part.Default(), nil
	}
	r, err := part.LoadCatalog(cfg.Catalog.File)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid part catalog").
			WithField("catalog.file").
			WithCause(err)
	}
	return r, nil
}

func runExport(cmd *cobra.Command, o *runOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runCfg, err := buildRunConfig(cfg, o)
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	// The command line is valid; later failures are not usage errors.
	cmd.SilenceUsage = true

	logger, err := logging.NewLogger(runCfg.LogFile, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return errors.NewResourceError("open log", err).WithPath(runCfg.LogFile)
	}
	defer func() { _ = logger.Close() }()

	fs := afero.NewOsFs()
	p, err := pipeline.New(runCfg, registry,
		pipeline.WithLogger(logger),
		pipeline.WithFs(fs),
		pipeline.WithCollaborators(pipeline.DefaultCollaborators(runCfg, fs, logger)),
	)
	if err != nil {
		return err
	}

	_, err = p.Run(cmd.Context())
	return err
}
