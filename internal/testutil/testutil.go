// Package testutil provides testing utilities for agrexport tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/mgijax/agrexport/internal/collab"
	"github.com/spf13/afero"
)

// FakeExecutor records commands instead of starting processes.
// Responses are keyed by the base name of the program (or, for interpreted
// programs, the base name of the first argument).
type FakeExecutor struct {
	mu       sync.Mutex
	commands []collab.Command

	// Stdout maps a program name to the bytes written to the command's
	// stdout when it runs.
	Stdout map[string]string
	// Errors maps a program name to the error its run returns.
	Errors map[string]error
}

// NewFakeExecutor creates an executor with no scripted behavior; every
// command succeeds with empty output.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		Stdout: make(map[string]string),
		Errors: make(map[string]error),
	}
}

// Run records c and replays its scripted response.
func (f *FakeExecutor) Run(_ context.Context, c collab.Command) error {
	f.mu.Lock()
	f.commands = append(f.commands, c)
	key := programKey(c)
	out, hasOut := f.Stdout[key]
	err := f.Errors[key]
	f.mu.Unlock()

	if hasOut && c.Stdout != nil {
		if _, werr := io.WriteString(c.Stdout, out); werr != nil {
			return werr
		}
	}
	return err
}

// Commands returns a copy of every command run so far.
func (f *FakeExecutor) Commands() []collab.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]collab.Command, len(f.commands))
	copy(out, f.commands)
	return out
}

// Programs returns the program key of every command run so far, in order.
func (f *FakeExecutor) Programs() []string {
	cmds := f.Commands()
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = programKey(c)
	}
	return out
}

// CommandLine renders c as a single space-joined string.
func CommandLine(c collab.Command) string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

func programKey(c collab.Command) string {
	name := filepath.Base(c.Name)
	if len(c.Args) > 0 && isInterpreter(name) {
		return filepath.Base(c.Args[0])
	}
	return name
}

func isInterpreter(name string) bool {
	return strings.HasPrefix(name, "python") || name == "sh" || name == "bash"
}

// ExitError is a scripted non-zero exit.
type ExitError struct {
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Status)
}

// ExitCode returns the scripted status.
func (e *ExitError) ExitCode() int {
	return e.Status
}

// WriteFile writes content to path on fs, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// ReadFile returns the content of path on fs.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	b, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(b)
}

// ReadGzipFile returns the decompressed content of path on fs.
func ReadGzipFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	f, err := fs.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("%s is not gzip: %v", path, err)
	}
	defer zr.Close()

	b, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to decompress %s: %v", path, err)
	}
	return string(b)
}

// Gzip compresses content.
func Gzip(t *testing.T, content string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

// AssertFileExists fails the test if path does not exist on fs.
func AssertFileExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	if _, err := fs.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

// AssertFileNotExists fails the test if path exists on fs.
func AssertFileNotExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	_, err := fs.Stat(path)
	if err == nil {
		t.Errorf("expected file %s to not exist", path)
		return
	}
	if !os.IsNotExist(err) {
		t.Errorf("unexpected error checking %s: %v", path, err)
	}
}
