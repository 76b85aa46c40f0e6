package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rios0rios0/forksync/internal/domain/repositories"
)

// runner abstracts the Shell so the adapter can be tested with a fake.
type runner interface {
	Run(ctx context.Context, args ...string) error
	Output(ctx context.Context, args ...string) (string, error)
}

// Repository adapts the local git repository to the domain port. Reads go
// through go-git (side-effect free, work without spawning a process);
// mutations shell out to the git CLI because go-git has no usable rebase
// and the CLI honors the user's hooks and credential configuration.
type Repository struct {
	runner runner
	dir    string
}

var _ repositories.GitRepository = (*Repository)(nil)

// NewRepository creates a Repository operating on the working directory,
// with all mutations routed through the given shell.
func NewRepository(shell *Shell) *Repository {
	return newRepository(shell, ".")
}

func newRepository(r runner, dir string) *Repository {
	return &Repository{runner: r, dir: dir}
}

func (it *Repository) open() (*gogit.Repository, error) {
	return gogit.PlainOpenWithOptions(it.dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
}

// IsInsideWorkTree reports whether the directory is inside a git work tree.
func (it *Repository) IsInsideWorkTree(_ context.Context) bool {
	_, err := it.open()
	return err == nil
}

// gitVersionPattern extracts the leading dotted number from the version
// reported by git, tolerating platform suffixes like "2.39.2.windows.1".
var gitVersionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Version returns the installed git version, e.g. "2.39.2".
func (it *Repository) Version(ctx context.Context) (string, error) {
	out, err := it.runner.Output(ctx, "version")
	if err != nil {
		return "", err
	}
	return parseGitVersion(out)
}

func parseGitVersion(out string) (string, error) {
	version := gitVersionPattern.FindString(out)
	if version == "" {
		return "", fmt.Errorf("unexpected 'git version' output: %q", out)
	}
	return version, nil
}

// IsDirty reports whether the working tree has staged or unstaged
// changes. Untracked files are ignored: they survive branch switches
// without being carried into commits.
func (it *Repository) IsDirty(_ context.Context) (bool, error) {
	repo, err := it.open()
	if err != nil {
		return false, fmt.Errorf("failed to open the repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open the work tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read the work tree status: %w", err)
	}

	for _, file := range status {
		if file.Staging == gogit.Untracked && file.Worktree == gogit.Untracked {
			continue
		}
		if file.Staging != gogit.Unmodified || file.Worktree != gogit.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// HasRemote reports whether the named remote is configured.
func (it *Repository) HasRemote(_ context.Context, name string) (bool, error) {
	repo, err := it.open()
	if err != nil {
		return false, fmt.Errorf("failed to open the repository: %w", err)
	}

	_, err = repo.Remote(name)
	if errors.Is(err, gogit.ErrRemoteNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up remote %q: %w", name, err)
	}
	return true, nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" for a
// detached HEAD.
func (it *Repository) CurrentBranch(_ context.Context) (string, error) {
	repo, err := it.open()
	if err != nil {
		return "", fmt.Errorf("failed to open the repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (it *Repository) BranchExists(_ context.Context, branch string) (bool, error) {
	repo, err := it.open()
	if err != nil {
		return false, fmt.Errorf("failed to open the repository: %w", err)
	}

	_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up branch %q: %w", branch, err)
	}
	return true, nil
}

// conflictMarkers are the git-dir entries that exist while a rebase or
// merge is unfinished.
var conflictMarkers = []string{"rebase-merge", "rebase-apply", "MERGE_HEAD"}

// HasConflict reports whether a rebase or merge is currently in progress.
func (it *Repository) HasConflict(ctx context.Context) bool {
	gitDir, err := it.runner.Output(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	for _, marker := range conflictMarkers {
		if _, statErr := os.Stat(filepath.Join(gitDir, marker)); statErr == nil {
			return true
		}
	}
	return false
}

// Fetch updates the remote-tracking refs of the named remote, pruning
// stale ones.
func (it *Repository) Fetch(ctx context.Context, remote string) error {
	return it.runner.Run(ctx, "fetch", "--prune", remote)
}

// SwitchBranch checks out an existing local branch.
func (it *Repository) SwitchBranch(ctx context.Context, branch string) error {
	return it.runner.Run(ctx, "switch", branch)
}

// CreateTrackingBranch creates and checks out a branch tracking
// remote/source.
func (it *Repository) CreateTrackingBranch(ctx context.Context, branch, remote, source string) error {
	return it.runner.Run(ctx, "switch", "-c", branch, "--track", remote+"/"+source)
}

// ForceResetTo hard-resets the checked-out branch to remote/branch.
func (it *Repository) ForceResetTo(ctx context.Context, remote, branch string) error {
	return it.runner.Run(ctx, "reset", "--hard", remote+"/"+branch)
}

// Rebase replays the checked-out branch's commits on top of branch.
func (it *Repository) Rebase(ctx context.Context, branch string) error {
	return it.runner.Run(ctx, "rebase", branch)
}

// Merge merges branch into the checked-out branch without opening an
// editor; git fast-forwards on its own when possible.
func (it *Repository) Merge(ctx context.Context, branch string) error {
	return it.runner.Run(ctx, "merge", "--no-edit", branch)
}

// Push publishes branch to the named remote.
func (it *Repository) Push(ctx context.Context, remote, branch string) error {
	return it.runner.Run(ctx, "push", remote, branch)
}
