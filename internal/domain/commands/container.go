package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewMigrationNotesCommand); err != nil {
		return err
	}
	if err := container.Provide(NewReleasesCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *MigrationNotesCommand) MigrationNotes {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ReleasesCommand) Releases {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
