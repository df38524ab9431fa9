//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/relgen/internal/domain/commands"
	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// StubReleasesCommand is a stub implementation of commands.Releases.
type StubReleasesCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Releases         []entities.ReleaseLabel
	LastSettings     *entities.Settings
}

var _ commands.Releases = (*StubReleasesCommand)(nil)

func (s *StubReleasesCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) ([]entities.ReleaseLabel, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Releases, s.ExecuteErr
}
