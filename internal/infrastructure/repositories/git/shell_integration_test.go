//go:build integration

package git_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/forksync/internal/domain/entities"
	gitRepo "github.com/rios0rios0/forksync/internal/infrastructure/repositories/git"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
}

func TestShellAgainstRealGit(t *testing.T) {
	t.Parallel()

	t.Run("should return trimmed stdout from a read", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		shell := gitRepo.NewShell()

		// when
		out, err := shell.Output(context.Background(), "version")

		// then
		require.NoError(t, err)
		assert.Contains(t, out, "git version")
	})

	t.Run("should fail with a CommandError including stderr", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		shell := gitRepo.NewShell()

		// when
		err := shell.Run(context.Background(), "definitely-not-a-subcommand")

		// then
		var cmdErr *entities.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "git definitely-not-a-subcommand", cmdErr.Command)
		assert.NotZero(t, cmdErr.ExitStatus)
		assert.NotEmpty(t, cmdErr.Stderr)
	})

	t.Run("should not execute reads through the dry-run switch", func(t *testing.T) {
		t.Parallel()
		requireGit(t)

		// given
		shell := gitRepo.NewShell()
		shell.SetDryRun(true)

		// when: reads are side-effect free and must keep working
		out, err := shell.Output(context.Background(), "version")

		// then
		require.NoError(t, err)
		assert.Contains(t, out, "git version")
	})
}
