//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

// Commit records one CommitSingleFile call.
type Commit struct {
	Path    string
	Message string
}

// SpyNotesRepository implements repositories.NotesRepository as a configurable spy.
type SpyNotesRepository struct {
	RootDir string

	// --- CommitSingleFile ---
	CommitErr error
	Commits   []Commit

	// --- opener spy ---
	OpenErr    error
	OpenedWith []repositories.NotesRepositoryOptions
}

var _ repositories.NotesRepository = (*SpyNotesRepository)(nil)

func (s *SpyNotesRepository) Root() string { return s.RootDir }

func (s *SpyNotesRepository) CommitSingleFile(relativePath, message string) error {
	if s.CommitErr != nil {
		return s.CommitErr
	}
	s.Commits = append(s.Commits, Commit{Path: relativePath, Message: message})
	return nil
}

// Opener returns a repositories.NotesRepositoryOpener that hands out the spy.
func (s *SpyNotesRepository) Opener() repositories.NotesRepositoryOpener {
	return func(_ context.Context, opts repositories.NotesRepositoryOptions) (repositories.NotesRepository, error) {
		s.OpenedWith = append(s.OpenedWith, opts)
		if s.OpenErr != nil {
			return nil, s.OpenErr
		}
		return s, nil
	}
}
