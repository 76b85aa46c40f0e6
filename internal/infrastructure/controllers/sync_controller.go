package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/forksync/internal/domain/commands"
	"github.com/rios0rios0/forksync/internal/domain/entities"
	gitRepo "github.com/rios0rios0/forksync/internal/infrastructure/repositories/git"
)

// SyncController handles the synchronization run. It is bound both to the
// root command and to the "sync" subcommand.
type SyncController struct {
	command commands.Sync
	shell   *gitRepo.Shell
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync, shell *gitRepo.Shell) *SyncController {
	return &SyncController{command: command, shell: shell}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync",
		Short: "Synchronize the customized main branch with its upstream",
		Long: `Keep a customized branch of a forked repository in sync with upstream.

The fork branch is forced to exactly mirror the upstream remote's main
branch, then the main branch is reconciled with it using the configured
strategy (rebase or merge), and the result is optionally pushed to the
origin remote. The branch checked out at start is restored on exit.

Every flag has an environment variable override (STRATEGY, PUSH, ORIGIN,
UPSTREAM, MAIN_BRANCH, FORK_BRANCH, DRY_RUN); flags take precedence over
the environment, and the environment over the optional config file.`,
	}
}

// AddFlags adds the sync flags to the given Cobra command.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("strategy", entities.StrategyRebase,
		"Integration strategy for main <- fork (rebase or merge)")
	cmd.Flags().Bool("push", true,
		"Push the synchronized main branch to the origin remote")
	cmd.Flags().Bool("no-push", false,
		"Skip pushing the synchronized main branch")
	cmd.Flags().String("origin", entities.DefaultOrigin,
		"Remote receiving the push")
	cmd.Flags().String("upstream", entities.DefaultUpstream,
		"Remote providing the source-of-truth main branch")
	cmd.Flags().String("main", entities.DefaultMainBranch,
		"Local branch carrying the customizations")
	cmd.Flags().String("fork", entities.DefaultForkBranch,
		"Local branch mirroring upstream's main branch")
	cmd.Flags().Bool("dry-run", false,
		"Log the git commands without executing them")
}

// Execute resolves the settings and runs the synchronization.
func (it *SyncController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	file, err := loadFileSettings(cmd)
	if err != nil {
		return err
	}

	settings, err := entities.NewSettings(file, collectOverrides(cmd))
	if err != nil {
		return err
	}

	it.shell.SetDryRun(settings.DryRun)
	if settings.DryRun {
		logger.Info("Dry run: git commands will be logged, not executed")
	}

	return it.command.Execute(ctx, settings)
}

// loadFileSettings loads the config file named by --config, or the first
// one discovered in the standard locations. A missing discovered file is
// not an error; an unreadable explicit path is a usage error.
func loadFileSettings(cmd *cobra.Command) (*entities.FileSettings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		file, err := entities.LoadFileSettings(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entities.ErrInvalidArgument, err)
		}
		logger.Infof("Using config file: %s", path)
		return file, nil
	}

	path, err := entities.FindConfigFile()
	if err != nil {
		return nil, nil // no config file, defaults apply
	}

	file, err := entities.LoadFileSettings(path)
	if err != nil {
		return nil, err
	}
	logger.Infof("Using config file: %s", path)
	return file, nil
}

// collectOverrides translates the flags the user actually set into
// settings overrides, so unset flags fall through to the environment.
func collectOverrides(cmd *cobra.Command) entities.FlagOverrides {
	var overrides entities.FlagOverrides
	flags := cmd.Flags()

	if flags.Changed("strategy") {
		v, _ := flags.GetString("strategy")
		overrides.Strategy = &v
	}
	// --no-push wins when both toggles are given.
	if flags.Changed("no-push") {
		if noPush, _ := flags.GetBool("no-push"); noPush {
			v := false
			overrides.Push = &v
		}
	} else if flags.Changed("push") {
		v, _ := flags.GetBool("push")
		overrides.Push = &v
	}
	if flags.Changed("origin") {
		v, _ := flags.GetString("origin")
		overrides.Origin = &v
	}
	if flags.Changed("upstream") {
		v, _ := flags.GetString("upstream")
		overrides.Upstream = &v
	}
	if flags.Changed("main") {
		v, _ := flags.GetString("main")
		overrides.MainBranch = &v
	}
	if flags.Changed("fork") {
		v, _ := flags.GetString("fork")
		overrides.ForkBranch = &v
	}
	if flags.Changed("dry-run") {
		v, _ := flags.GetBool("dry-run")
		overrides.DryRun = &v
	}

	return overrides
}
