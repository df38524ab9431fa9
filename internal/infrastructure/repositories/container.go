package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/relgen/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/relgen/internal/infrastructure/repositories/github"
	mdRepo "github.com/rios0rios0/relgen/internal/infrastructure/repositories/markdown"
	"github.com/rios0rios0/relgen/internal/infrastructure/repositories/session"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Pull request source, built per invocation once the token is known
	if err := container.Provide(func() repositories.PullRequestRepositoryFactory {
		return ghRepo.NewPullRequestRepository
	}); err != nil {
		return err
	}

	// Notes working copy, opened (or cloned) per invocation
	if err := container.Provide(func() repositories.NotesRepositoryOpener {
		return session.OpenOrClone
	}); err != nil {
		return err
	}

	if err := container.Provide(mdRepo.NewMarkdownRepository); err != nil {
		return err
	}

	return nil
}
