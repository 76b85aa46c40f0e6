//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/forksync/internal/domain/entities"
)

//nolint:paralleltest // subtests mutate the process environment via t.Setenv
func TestNewSettings(t *testing.T) {
	t.Run("should apply the built-in defaults", func(t *testing.T) {
		// given / when
		settings, err := entities.NewSettings(nil, entities.FlagOverrides{})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyRebase, settings.Strategy)
		assert.True(t, settings.Push)
		assert.Equal(t, "origin", settings.Origin)
		assert.Equal(t, "upstream", settings.Upstream)
		assert.Equal(t, "main", settings.MainBranch)
		assert.Equal(t, "fork", settings.ForkBranch)
		assert.False(t, settings.DryRun)
	})

	t.Run("should let the config file override the defaults", func(t *testing.T) {
		// given
		strategy := entities.StrategyMerge
		push := false
		file := &entities.FileSettings{Strategy: &strategy, Push: &push}

		// when
		settings, err := entities.NewSettings(file, entities.FlagOverrides{})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyMerge, settings.Strategy)
		assert.False(t, settings.Push)
		assert.Equal(t, "origin", settings.Origin, "unset file keys keep their defaults")
	})

	t.Run("should let the environment override the config file", func(t *testing.T) {
		// given
		strategy := entities.StrategyMerge
		file := &entities.FileSettings{Strategy: &strategy}
		t.Setenv(entities.EnvStrategy, entities.StrategyRebase)
		t.Setenv(entities.EnvUpstream, "source")
		t.Setenv(entities.EnvPush, "0")
		t.Setenv(entities.EnvDryRun, "1")

		// when
		settings, err := entities.NewSettings(file, entities.FlagOverrides{})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyRebase, settings.Strategy)
		assert.Equal(t, "source", settings.Upstream)
		assert.False(t, settings.Push)
		assert.True(t, settings.DryRun)
	})

	t.Run("should let flags override the environment", func(t *testing.T) {
		// given
		t.Setenv(entities.EnvStrategy, entities.StrategyMerge)
		t.Setenv(entities.EnvMainBranch, "master")
		strategy := entities.StrategyRebase
		branch := "trunk"
		flags := entities.FlagOverrides{Strategy: &strategy, MainBranch: &branch}

		// when
		settings, err := entities.NewSettings(nil, flags)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyRebase, settings.Strategy)
		assert.Equal(t, "trunk", settings.MainBranch)
	})

	t.Run("should ignore an unparseable boolean environment value", func(t *testing.T) {
		// given
		t.Setenv(entities.EnvPush, "maybe")

		// when
		settings, err := entities.NewSettings(nil, entities.FlagOverrides{})

		// then
		require.NoError(t, err)
		assert.True(t, settings.Push, "the default must survive a bad env value")
	})

	t.Run("should reject an unknown strategy before any side effect", func(t *testing.T) {
		// given
		strategy := "cherry-pick"
		flags := entities.FlagOverrides{Strategy: &strategy}

		// when
		settings, err := entities.NewSettings(nil, flags)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "cherry-pick")
	})

	t.Run("should reject an empty branch name", func(t *testing.T) {
		// given
		branch := ""
		flags := entities.FlagOverrides{ForkBranch: &branch}

		// when
		_, err := entities.NewSettings(nil, flags)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
	})

	t.Run("should reject identical main and fork branch names", func(t *testing.T) {
		// given
		branch := "main"
		flags := entities.FlagOverrides{ForkBranch: &branch}

		// when
		_, err := entities.NewSettings(nil, flags)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
	})
}

func TestLoadFileSettings(t *testing.T) {
	t.Parallel()

	t.Run("should parse a partial config file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "forksync.yaml")
		content := "strategy: merge\nupstream: source\npush: false\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		file, err := entities.LoadFileSettings(path)

		// then
		require.NoError(t, err)
		require.NotNil(t, file.Strategy)
		assert.Equal(t, entities.StrategyMerge, *file.Strategy)
		require.NotNil(t, file.Push)
		assert.False(t, *file.Push)
		assert.Nil(t, file.MainBranch, "unset keys stay nil")
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "nope.yaml")

		// when
		_, err := entities.LoadFileSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail for malformed YAML", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "forksync.yaml")
		require.NoError(t, os.WriteFile(path, []byte("strategy: [unclosed"), 0o644))

		// when
		_, err := entities.LoadFileSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}
