package repositories

import (
	"context"
)

// GitRepository is the narrow port over the local git repository. The read
// methods are side-effect free and always execute; the mutating methods go
// through the execution shim and are log-only in dry-run mode.
type GitRepository interface {
	// IsInsideWorkTree reports whether the working directory is inside a
	// git work tree.
	IsInsideWorkTree(ctx context.Context) bool

	// Version returns the installed git version as a dotted number
	// string, e.g. "2.39.2".
	Version(ctx context.Context) (string, error)

	// IsDirty reports whether the working tree has staged or unstaged
	// changes. Untracked files do not count as dirty.
	IsDirty(ctx context.Context) (bool, error)

	// HasRemote reports whether the named remote is configured.
	HasRemote(ctx context.Context, name string) (bool, error)

	// CurrentBranch returns the checked-out branch name, or "HEAD" when
	// the repository is in detached-HEAD state.
	CurrentBranch(ctx context.Context) (string, error)

	// BranchExists reports whether a local branch with the given name exists.
	BranchExists(ctx context.Context, branch string) (bool, error)

	// HasConflict reports whether a rebase or merge is currently in
	// progress (stopped on conflicts or otherwise unfinished).
	HasConflict(ctx context.Context) bool

	// Fetch updates the remote-tracking refs of the named remote,
	// pruning refs that no longer exist on the remote.
	Fetch(ctx context.Context, remote string) error

	// SwitchBranch checks out an existing local branch.
	SwitchBranch(ctx context.Context, branch string) error

	// CreateTrackingBranch creates and checks out a new local branch
	// tracking remote/source.
	CreateTrackingBranch(ctx context.Context, branch, remote, source string) error

	// ForceResetTo hard-resets the checked-out branch to remote/branch,
	// discarding any local divergence.
	ForceResetTo(ctx context.Context, remote, branch string) error

	// Rebase replays the checked-out branch's commits on top of the given
	// branch.
	Rebase(ctx context.Context, branch string) error

	// Merge merges the given branch into the checked-out branch,
	// fast-forwarding when possible and creating a non-interactive merge
	// commit otherwise.
	Merge(ctx context.Context, branch string) error

	// Push publishes the given branch to the named remote.
	Push(ctx context.Context, remote, branch string) error
}
