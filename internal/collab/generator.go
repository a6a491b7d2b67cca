package collab

import (
	"context"
	"io"
	"path/filepath"

	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/part"
	"github.com/spf13/afero"
)

// Generator runs a part's generator program, capturing its stdout into the
// target file.
type Generator struct {
	Exec CommandExecutor
	Fs   afero.Fs
	// BinDir is where relative generator programs live.
	BinDir string
	// Interpreter, when set, is run with the program as its first argument.
	Interpreter string
	// Stderr receives the program's diagnostics, usually the run log.
	Stderr io.Writer
}

// CommandFor returns the invocation that would generate d.
func (g *Generator) CommandFor(d part.Descriptor) Command {
	argv := d.Generator.Command
	dir := g.binDir()
	prog := argv[0]
	if dir != "" && !filepath.IsAbs(prog) {
		prog = filepath.Join(dir, prog)
	}

	args := append([]string{}, argv[1:]...)
	name := prog
	if g.Interpreter != "" {
		name = g.Interpreter
		args = append([]string{prog}, args...)
	}
	return Command{Name: name, Args: args, Dir: dir, Stderr: g.Stderr}
}

// binDir is BinDir made absolute. The child runs inside it, so a relative
// program path would otherwise be resolved twice.
func (g *Generator) binDir() string {
	if g.BinDir == "" {
		return ""
	}
	if abs, err := filepath.Abs(g.BinDir); err == nil {
		return abs
	}
	return g.BinDir
}

// Generate writes the output of d's generator to dest, truncating any
// previous file so reruns overwrite rather than append.
func (g *Generator) Generate(ctx context.Context, d part.Descriptor, dest string) error {
	if len(d.Generator.Command) == 0 {
		return errors.NewExternalCommandError("generate", errors.New("no generator command")).WithPart(d.Code)
	}

	out, err := g.Fs.Create(dest)
	if err != nil {
		return errors.NewResourceError("create artifact", err).WithPath(dest)
	}
	defer out.Close()

	cmd := g.CommandFor(d)
	cmd.Stdout = out
	if cmd.Stderr == nil {
		cmd.Stderr = io.Discard
	}

	if err := g.Exec.Run(ctx, cmd); err != nil {
		return errors.NewExternalCommandError("generate", err).WithPart(d.Code)
	}
	if err := out.Close(); err != nil {
		return errors.NewResourceError("close artifact", err).WithPath(dest)
	}
	return nil
}
