package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/forksync/internal/domain/entities"
)

// Shell is the single chokepoint for git side effects. Every mutating
// operation goes through Run; in dry-run mode Run only logs the command
// and reports success, so a whole run can be planned without touching
// the repository. Read-only commands use Output and always execute.
type Shell struct {
	dryRun bool
}

// NewShell creates a Shell in normal (executing) mode.
func NewShell() *Shell {
	return &Shell{}
}

// SetDryRun toggles dry-run mode. Set once after the settings are
// resolved, before any mutating step runs.
func (it *Shell) SetDryRun(enabled bool) {
	it.dryRun = enabled
}

// DryRun reports whether the shell is in dry-run mode.
func (it *Shell) DryRun() bool {
	return it.dryRun
}

// Run executes a mutating git command, streaming its stdout and failing
// with a CommandError on non-zero exit. In dry-run mode the command is
// only logged.
func (it *Shell) Run(ctx context.Context, args ...string) error {
	display := "git " + strings.Join(args, " ")

	if it.dryRun {
		logger.Infof("[DRY RUN] would run: %s", display)
		return nil
	}

	logger.Debugf("Running: %s", display)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = os.Stdout

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return commandError(display, err, stderr.String())
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		logger.Debug(msg)
	}
	return nil
}

// Output executes a read-only git command and returns its trimmed stdout.
// Reads are side-effect free and execute even in dry-run mode.
func (it *Shell) Output(ctx context.Context, args ...string) (string, error) {
	display := "git " + strings.Join(args, " ")

	logger.Debugf("Running: %s", display)
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(display, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func commandError(display string, err error, stderr string) error {
	exitStatus := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitStatus = exitErr.ExitCode()
	}
	return &entities.CommandError{
		Command:    display,
		ExitStatus: exitStatus,
		Stderr:     strings.TrimSpace(stderr),
	}
}
