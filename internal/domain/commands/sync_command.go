package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/forksync/internal/domain/entities"
	"github.com/rios0rios0/forksync/internal/domain/repositories"
)

// minGitVersion is the oldest git release providing 'git switch'.
const minGitVersion = "v2.23.0"

// Sync is the interface for the synchronization command.
type Sync interface {
	Execute(ctx context.Context, settings *entities.Settings) error
}

// SyncCommand reconciles the customized main branch with its upstream:
// it mirrors upstream's main into the fork branch, integrates the fork
// branch into main using the configured strategy, and optionally pushes
// the result to the origin remote.
type SyncCommand struct {
	git repositories.GitRepository
}

// NewSyncCommand creates a new SyncCommand over the given repository.
func NewSyncCommand(git repositories.GitRepository) *SyncCommand {
	return &SyncCommand{git: git}
}

// Execute runs the precondition checks and then the synchronization
// sequence. The branch checked out at entry is restored on every exit
// path, unless a conflicted rebase or merge makes switching unsafe.
func (it *SyncCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	if err := it.guard(ctx, settings); err != nil {
		return err
	}

	original, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to determine the current branch: %w", err)
	}

	cleanup := newCleanup(it.git, original)
	stop := cleanup.HandleSignals()
	defer stop()
	defer cleanup.Run()

	return it.synchronize(ctx, settings)
}

// guard verifies every precondition with side-effect-free reads, before
// any mutating step runs.
func (it *SyncCommand) guard(ctx context.Context, settings *entities.Settings) error {
	if !it.git.IsInsideWorkTree(ctx) {
		return entities.ErrNotARepository
	}

	version, err := it.git.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to determine the git version: %w", err)
	}
	if semver.Compare("v"+version, minGitVersion) < 0 {
		return fmt.Errorf(
			"%w: have %s, need %s or newer",
			entities.ErrUnsupportedGitVersion, version, minGitVersion[1:],
		)
	}

	dirty, err := it.git.IsDirty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check the working tree state: %w", err)
	}
	if dirty {
		return entities.ErrDirtyWorkingTree
	}

	for _, remote := range []string{settings.Upstream, settings.Origin} {
		ok, remoteErr := it.git.HasRemote(ctx, remote)
		if remoteErr != nil {
			return fmt.Errorf("failed to check remote %q: %w", remote, remoteErr)
		}
		if !ok {
			return &entities.MissingRemoteError{Remote: remote}
		}
	}

	return nil
}

// synchronize runs the four steps strictly in order. Each step either
// fully succeeds or aborts the remaining sequence.
func (it *SyncCommand) synchronize(ctx context.Context, settings *entities.Settings) error {
	if err := it.fetchRemotes(ctx, settings); err != nil {
		return err
	}
	if err := it.mirrorFork(ctx, settings); err != nil {
		return err
	}
	if err := it.integrateMain(ctx, settings); err != nil {
		return err
	}

	if !settings.Push {
		logger.Info("Skipping push (disabled)")
		return nil
	}
	return it.publishMain(ctx, settings)
}

func (it *SyncCommand) fetchRemotes(ctx context.Context, settings *entities.Settings) error {
	for _, remote := range []string{settings.Upstream, settings.Origin} {
		logger.Infof("Fetching %q...", remote)
		if err := it.git.Fetch(ctx, remote); err != nil {
			return fmt.Errorf("failed to fetch %q: %w", remote, err)
		}
	}
	return nil
}

// mirrorFork forces the fork branch to exactly match upstream's main
// branch. The fork branch is never a place for local commits, so any
// prior content is discarded.
func (it *SyncCommand) mirrorFork(ctx context.Context, settings *entities.Settings) error {
	exists, err := it.git.BranchExists(ctx, settings.ForkBranch)
	if err != nil {
		return fmt.Errorf("failed to check branch %q: %w", settings.ForkBranch, err)
	}

	if exists {
		logger.Infof("Switching to branch %q", settings.ForkBranch)
		if switchErr := it.git.SwitchBranch(ctx, settings.ForkBranch); switchErr != nil {
			return fmt.Errorf("failed to switch to %q: %w", settings.ForkBranch, switchErr)
		}
	} else {
		logger.Infof(
			"Creating branch %q tracking %s/%s",
			settings.ForkBranch, settings.Upstream, settings.MainBranch,
		)
		if createErr := it.git.CreateTrackingBranch(
			ctx, settings.ForkBranch, settings.Upstream, settings.MainBranch,
		); createErr != nil {
			return fmt.Errorf("failed to create branch %q: %w", settings.ForkBranch, createErr)
		}
	}

	// Reset even when the branch was just created or already matches, so
	// the mirror invariant holds regardless of prior drift.
	logger.Infof("Mirroring %s/%s into %q", settings.Upstream, settings.MainBranch, settings.ForkBranch)
	if resetErr := it.git.ForceResetTo(ctx, settings.Upstream, settings.MainBranch); resetErr != nil {
		return fmt.Errorf(
			"failed to reset %q to %s/%s: %w",
			settings.ForkBranch, settings.Upstream, settings.MainBranch, resetErr,
		)
	}
	return nil
}

// integrateMain brings the fork branch into main using the configured
// strategy. A run halted on conflicts is surfaced as a ConflictError and
// left in place for the operator.
func (it *SyncCommand) integrateMain(ctx context.Context, settings *entities.Settings) error {
	logger.Infof("Switching to branch %q", settings.MainBranch)
	if err := it.git.SwitchBranch(ctx, settings.MainBranch); err != nil {
		return fmt.Errorf("failed to switch to %q: %w", settings.MainBranch, err)
	}

	var err error
	switch settings.Strategy {
	case entities.StrategyRebase:
		logger.Infof("Rebasing %q onto %q", settings.MainBranch, settings.ForkBranch)
		err = it.git.Rebase(ctx, settings.ForkBranch)
	case entities.StrategyMerge:
		logger.Infof("Merging %q into %q", settings.ForkBranch, settings.MainBranch)
		err = it.git.Merge(ctx, settings.ForkBranch)
	default:
		// Unreachable after validation, kept as a safety net.
		return fmt.Errorf("%w: unknown strategy %q", entities.ErrInvalidArgument, settings.Strategy)
	}

	if err != nil {
		if it.git.HasConflict(ctx) {
			return &entities.ConflictError{Operation: settings.Strategy}
		}
		return fmt.Errorf("failed to integrate %q into %q: %w", settings.ForkBranch, settings.MainBranch, err)
	}
	return nil
}

// publishMain pushes the integrated main branch. A failure here does not
// undo the earlier steps: the local branches are already correct, only
// the publication failed.
func (it *SyncCommand) publishMain(ctx context.Context, settings *entities.Settings) error {
	logger.Infof("Pushing %q to %q", settings.MainBranch, settings.Origin)
	if err := it.git.Push(ctx, settings.Origin, settings.MainBranch); err != nil {
		return fmt.Errorf(
			"local branches are synchronized, but pushing %q to %q failed: %w",
			settings.MainBranch, settings.Origin, err,
		)
	}
	return nil
}
