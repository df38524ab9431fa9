package repositories

import (
	"context"

	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// NotesRepository is the local working copy migration notes are committed to.
// It owns the index and HEAD of that working copy; nothing else may mutate them
// while it is open.
type NotesRepository interface {
	// Root returns the working copy directory.
	Root() string

	// CommitSingleFile stages exactly relativePath (slash separated, relative
	// to Root) and commits the index on top of HEAD with message.
	CommitSingleFile(relativePath, message string) error
}

// NotesRepositoryOptions describes where the working copy lives and how to
// obtain it when it is missing.
type NotesRepositoryOptions struct {
	LocalPath  string
	Remote     entities.Repository
	Token      string // clone authentication only, never persisted
	Username   string
	AllowClone bool
}

// NotesRepositoryOpener opens the working copy, cloning it when allowed.
type NotesRepositoryOpener func(ctx context.Context, opts NotesRepositoryOptions) (NotesRepository, error)
