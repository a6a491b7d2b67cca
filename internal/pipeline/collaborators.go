package pipeline

import (
	"net/http"

	"github.com/mgijax/agrexport/internal/collab"
	"github.com/mgijax/agrexport/internal/logging"
	"github.com/mgijax/agrexport/internal/run"
	"github.com/spf13/afero"
)

// DefaultCollaborators wires the real generator, validator, fetcher,
// submitter, and distributor for cfg. Process diagnostics go to the log
// sink. No client timeout is set; a hung collaborator blocks the run.
func DefaultCollaborators(cfg run.Config, fs afero.Fs, logger *logging.Logger) Collaborators {
	exec := collab.NewCLICommandExecutor()
	client := &http.Client{}

	return Collaborators{
		Generator: &collab.Generator{
			Exec:        exec,
			Fs:          fs,
			BinDir:      cfg.GeneratorBinDir,
			Interpreter: cfg.Interpreter,
			Stderr:      logger.Writer(),
		},
		Fetcher: &collab.Fetcher{Client: client, Fs: fs},
		Validator: &collab.Validator{
			Exec:      exec,
			Command:   cfg.ValidatorCommand,
			SchemaDir: cfg.SchemaDir,
			Output:    logger.Writer(),
		},
		Submitter:   &collab.Submitter{Client: client, URL: cfg.SubmitURL, Fs: fs},
		Distributor: &collab.Distributor{Fs: fs, Dir: cfg.DistributionDir},
		ReadToken: func() (string, error) {
			return collab.ReadToken(fs, cfg.TokenFile)
		},
	}
}
