package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/forksync/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/forksync/internal/infrastructure/repositories/git"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// The shell is the single chokepoint for git side effects; controllers
	// also receive it to toggle dry-run mode after resolving the settings.
	if err := container.Provide(gitRepo.NewShell); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *gitRepo.Repository) domainRepos.GitRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
