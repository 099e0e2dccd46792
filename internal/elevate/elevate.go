// Package elevate writes to root-owned files on behalf of an unprivileged user.
package elevate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
)

// Writer performs a privileged write of value to the file at path.
//
//go:generate mockery --name Writer
type Writer interface {
	Write(ctx context.Context, path string, value string) error
}

// ErrRejected is returned when the privileged write did not take effect. This covers a cancelled
// or denied authentication prompt, a missing helper and a helper that failed to write the file.
var ErrRejected = errors.New("privileged write rejected")

// DefaultCommand prompts the user through polkit and writes stdin to the file passed as the last argument.
var DefaultCommand = []string{"pkexec", "tee"}

// Helper runs an external command to write the file. The command receives the path as its last
// argument and the value on stdin. Exit status 0 means the write succeeded.
type Helper struct {
	Command []string
}

func (h Helper) Write(ctx context.Context, path string, value string) error {
	command := h.Command
	if len(command) == 0 {
		command = DefaultCommand
	}
	args := append(command[1:len(command):len(command)], path)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Stdin = strings.NewReader(value + "\n")
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with status %d: %s", ErrRejected, command[0], exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return nil
}

// Direct writes the file itself. Used when the process already runs as root.
type Direct struct {
	FS afero.Fs
}

func (d Direct) Write(_ context.Context, path string, value string) error {
	fs := d.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := afero.WriteFile(fs, path, []byte(value), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return nil
}

// New returns the Writer for the configured helper: "direct" writes the file from this process,
// anything else is split into the helper command line (e.g. "pkexec tee", "sudo -n tee").
func New(helper string) (Writer, error) {
	if helper == "direct" {
		return Direct{}, nil
	}
	command := strings.Fields(helper)
	if len(command) == 0 {
		return nil, errors.New("no privilege helper specified")
	}
	return Helper{Command: command}, nil
}
