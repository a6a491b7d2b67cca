// Package pipeline runs an export: every part of the catalog, in catalog
// order, through the enabled subset of the five stages.
//
// # Stages
//
// [Executor] handles one part. Stages run in the fixed order generate,
// validate, report, upload, distribute, each gated by the run's
// [run.StageSet]. The part's [part.Kind] is consulted once per stage through
// its behavior table: GFF parts are fetched instead of generated and are
// never validated, and assembly parts are inert.
//
// # Driver
//
// [Pipeline] owns the run. It creates the versioned output directory (even
// in dry-run mode), logs "skipping" for every unselected part, hands
// selected parts to the executor, and logs a final summary.
//
// A failure the error policy classifies as fatal comes back as an
// [errors.FatalError]; the driver stops at once and returns it, and no later
// stage or part runs.
//
// # Usage
//
//	p, err := pipeline.New(cfg, part.Default(),
//	    pipeline.WithLogger(logger),
//	    pipeline.WithCollaborators(pipeline.DefaultCollaborators(cfg, fs, logger)),
//	)
//	if err != nil {
//	    return err
//	}
//	result, err := p.Run(ctx)
package pipeline
