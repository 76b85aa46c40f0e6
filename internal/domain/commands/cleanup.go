package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/forksync/internal/domain/entities"
	"github.com/rios0rios0/forksync/internal/domain/repositories"
)

// cleanup restores the branch that was checked out before the run
// started. It runs at most once, on every exit path (normal return,
// error, or interrupt), and never switches branches while a rebase or
// merge is still in progress.
type cleanup struct {
	git      repositories.GitRepository
	original string
	once     sync.Once
}

func newCleanup(git repositories.GitRepository, original string) *cleanup {
	return &cleanup{git: git, original: original}
}

// Run performs the restore exactly once; later calls are no-ops.
func (it *cleanup) Run() {
	it.once.Do(it.restore)
}

func (it *cleanup) restore() {
	ctx := context.Background()

	if it.git.HasConflict(ctx) {
		logger.Warn("A rebase or merge is still in progress; leaving the repository as it is.")
		logger.Warn("Resolve the conflicts and continue, or abort with 'git rebase --abort' / 'git merge --abort'.")
		return
	}

	current, err := it.git.CurrentBranch(ctx)
	if err != nil {
		logger.Warnf("Failed to determine the current branch, not switching back: %v", err)
		return
	}
	if current == it.original {
		return
	}
	if it.original == "HEAD" {
		// The run started on a detached HEAD; there is no branch to
		// switch back to.
		logger.Warnf("Started on a detached HEAD, staying on %q", current)
		return
	}

	logger.Infof("Switching back to branch %q", it.original)
	if switchErr := it.git.SwitchBranch(ctx, it.original); switchErr != nil {
		// A failed restore never changes the run's exit status.
		logger.Warnf("Failed to switch back to %q: %v", it.original, switchErr)
	}
}

// HandleSignals runs the cleanup on SIGINT/SIGTERM and exits with the
// operational failure status. The returned stop function releases the
// signal handler.
func (it *cleanup) HandleSignals() (stop func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-signals:
			logger.Warnf("Received %s, restoring the repository state", sig)
			it.Run()
			os.Exit(entities.ExitFailure)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
