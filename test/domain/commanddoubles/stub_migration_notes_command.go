//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/relgen/internal/domain/commands"
	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// StubMigrationNotesCommand is a stub implementation of commands.MigrationNotes.
type StubMigrationNotesCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.MigrationNotesOptions
}

var _ commands.MigrationNotes = (*StubMigrationNotesCommand)(nil)

func (s *StubMigrationNotesCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.MigrationNotesOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
