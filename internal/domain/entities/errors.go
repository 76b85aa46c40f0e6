package entities

import (
	"errors"
	"fmt"
)

// Process exit codes. Usage errors are distinguished from operational
// failures so callers in scripts can tell them apart.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var (
	// ErrInvalidArgument marks configuration errors caught before any
	// side effect (bad strategy, unknown flag, empty names).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotARepository is returned when the working directory is not
	// inside a git work tree.
	ErrNotARepository = errors.New("not inside a git repository")

	// ErrDirtyWorkingTree is returned when uncommitted changes (staged
	// or unstaged) would be carried across a branch switch.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes, commit or stash them first")

	// ErrUnsupportedGitVersion is returned when the installed git is too
	// old for the subcommands this tool relies on.
	ErrUnsupportedGitVersion = errors.New("unsupported git version")
)

// MissingRemoteError indicates that a configured remote is not registered
// in the repository.
type MissingRemoteError struct {
	Remote string
}

func (e *MissingRemoteError) Error() string {
	return fmt.Sprintf("remote %q is not configured, add it with 'git remote add %s <url>'", e.Remote, e.Remote)
}

// CommandError indicates that a git command exited with a non-zero status.
type CommandError struct {
	Command    string
	ExitStatus int
	Stderr     string
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%q failed with exit status %d: %s", e.Command, e.ExitStatus, e.Stderr)
	}
	return fmt.Sprintf("%q failed with exit status %d", e.Command, e.ExitStatus)
}

// ConflictError indicates that a rebase or merge stopped on conflicts and
// was left in progress for the operator to resolve.
type ConflictError struct {
	Operation string // "rebase" or "merge"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"%s stopped with conflicts; resolve them and run 'git %s --continue', or abort with 'git %s --abort'",
		e.Operation, e.Operation, e.Operation,
	)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument):
		return ExitUsage
	default:
		return ExitFailure
	}
}
