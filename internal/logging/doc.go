// Package logging provides the log sink shared by every stage of an export run.
//
// The sink is configured once at startup: either a file path, in which case
// messages are appended to that file, or nothing, in which case messages go
// to stderr. Every line starts with a timestamp. Nothing is buffered; each
// call is visible as soon as it returns.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/data/agr/run.log", "INFO", "text")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLog := logger.WithRun(runID)
//	runLog.WithPart("g").WithStage("generate").Info("generating", "path", path)
//
// Output:
//
//	time=2026-10-18T09:12:03.114-04:00 level=INFO msg=generating run_id=... part=g stage=generate path=...
//
// # Collaborator Output
//
// Generator and validator processes write their diagnostics to [Logger.Writer]
// so that they appear in the same file as the pipeline's own messages.
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a
// bytes.Buffer to assert on what was logged.
package logging
