package collab

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/mgijax/agrexport/internal/errors"
)

// Validator runs the external JSON-schema validator.
type Validator struct {
	Exec CommandExecutor
	// Command is the validator program, optionally with leading arguments,
	// e.g. "python3 agr_validate.py".
	Command string
	// SchemaDir is the root of the schema checkout; part schema paths are
	// relative to it.
	SchemaDir string
	// Output receives the validator's stdout and stderr.
	Output io.Writer
}

// SchemaPath resolves a part's schema path against SchemaDir.
func (v *Validator) SchemaPath(rel string) string {
	if v.SchemaDir == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(v.SchemaDir, rel)
}

// CommandFor returns the validator invocation for one data file.
func (v *Validator) CommandFor(schema, data string) Command {
	words := strings.Fields(v.Command)
	out := v.Output
	if out == nil {
		out = io.Discard
	}
	var name string
	var args []string
	if len(words) > 0 {
		name = words[0]
		args = append(args, words[1:]...)
	}
	args = append(args, "-s", v.SchemaPath(schema), "-d", data)
	return Command{Name: name, Args: args, Stdout: out, Stderr: out}
}

// Validate checks data against schema. Exit status 0 means valid.
func (v *Validator) Validate(ctx context.Context, schema, data string) error {
	if strings.TrimSpace(v.Command) == "" {
		return errors.NewExternalCommandError("validate", errors.New("no validator command configured"))
	}
	if err := v.Exec.Run(ctx, v.CommandFor(schema, data)); err != nil {
		return errors.NewExternalCommandError("validate", err)
	}
	return nil
}
