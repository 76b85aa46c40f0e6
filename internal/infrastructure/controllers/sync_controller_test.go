//go:build unit

package controllers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/forksync/internal/domain/entities"
	"github.com/rios0rios0/forksync/internal/infrastructure/controllers"
	gitRepo "github.com/rios0rios0/forksync/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/forksync/test/domain/commanddoubles"
)

// newSyncCmd builds a Cobra command carrying the same flags the real
// binary wires up in main.
func newSyncCmd(controller *controllers.SyncController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: "sync"}
	controller.AddFlags(cmd)
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	return cmd
}

//nolint:paralleltest // subtests pin HOME via t.Setenv to keep config discovery deterministic
func TestSyncControllerExecute(t *testing.T) {
	t.Run("should resolve defaults and invoke the sync command", func(t *testing.T) {
		// given
		t.Setenv("HOME", t.TempDir())
		stub := &commanddoubles.StubSyncCommand{}
		shell := gitRepo.NewShell()
		controller := controllers.NewSyncController(stub, shell)
		cmd := newSyncCmd(controller)
		require.NoError(t, cmd.ParseFlags(nil))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, entities.StrategyRebase, stub.LastSettings.Strategy)
		assert.True(t, stub.LastSettings.Push)
		assert.False(t, shell.DryRun())
	})

	t.Run("should pass the flags through to the settings", func(t *testing.T) {
		// given
		t.Setenv("HOME", t.TempDir())
		stub := &commanddoubles.StubSyncCommand{}
		controller := controllers.NewSyncController(stub, gitRepo.NewShell())
		cmd := newSyncCmd(controller)
		require.NoError(t, cmd.ParseFlags([]string{
			"--strategy", "merge", "--no-push", "--fork", "mirror", "--upstream", "source",
		}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyMerge, stub.LastSettings.Strategy)
		assert.False(t, stub.LastSettings.Push)
		assert.Equal(t, "mirror", stub.LastSettings.ForkBranch)
		assert.Equal(t, "source", stub.LastSettings.Upstream)
	})

	t.Run("should enable dry-run mode on the shell", func(t *testing.T) {
		// given
		t.Setenv("HOME", t.TempDir())
		stub := &commanddoubles.StubSyncCommand{}
		shell := gitRepo.NewShell()
		controller := controllers.NewSyncController(stub, shell)
		cmd := newSyncCmd(controller)
		require.NoError(t, cmd.ParseFlags([]string{"--dry-run"}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.True(t, shell.DryRun())
		assert.True(t, stub.LastSettings.DryRun)
	})

	t.Run("should load the explicit config file", func(t *testing.T) {
		// given
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "forksync.yaml")
		require.NoError(t, os.WriteFile(path, []byte("upstream: source\npush: false\n"), 0o644))
		stub := &commanddoubles.StubSyncCommand{}
		controller := controllers.NewSyncController(stub, gitRepo.NewShell())
		cmd := newSyncCmd(controller)
		require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "source", stub.LastSettings.Upstream)
		assert.False(t, stub.LastSettings.Push)
	})

	t.Run("should fail with a usage error for an unknown strategy", func(t *testing.T) {
		// given
		t.Setenv("HOME", t.TempDir())
		stub := &commanddoubles.StubSyncCommand{}
		controller := controllers.NewSyncController(stub, gitRepo.NewShell())
		cmd := newSyncCmd(controller)
		require.NoError(t, cmd.ParseFlags([]string{"--strategy", "squash"}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
		assert.Zero(t, stub.ExecuteCallCount, "no command may run on a usage error")
	})

	t.Run("should fail with a usage error for an unreadable explicit config", func(t *testing.T) {
		// given
		t.Setenv("HOME", t.TempDir())
		stub := &commanddoubles.StubSyncCommand{}
		controller := controllers.NewSyncController(stub, gitRepo.NewShell())
		cmd := newSyncCmd(controller)
		require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
