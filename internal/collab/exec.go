package collab

import (
	"context"
	"io"
	"os/exec"
)

// Command is one external program invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// CommandExecutor abstracts process execution for testability.
type CommandExecutor interface {
	// Run starts the command and blocks until it exits. A non-zero exit
	// status is returned as an error.
	Run(ctx context.Context, cmd Command) error
}

// CLICommandExecutor runs commands using os/exec.
type CLICommandExecutor struct{}

// NewCLICommandExecutor creates a new CLI command executor.
func NewCLICommandExecutor() *CLICommandExecutor {
	return &CLICommandExecutor{}
}

// Run executes the command and waits for it to finish.
func (e *CLICommandExecutor) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}
