package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/relgen/internal/domain/entities"
	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

const (
	releaseDirMode = 0o755
	noteFileMode   = 0o644
)

// MigrationNotes is the interface for the migration-notes command.
type MigrationNotes interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MigrationNotesOptions) error
}

// MigrationNotesOptions holds the runtime options of one migration-notes run.
type MigrationNotesOptions struct {
	Release       string
	From          string
	To            string
	Label         string // only pull requests carrying it get a note; empty means all
	CreateRelease bool
	CreateCommit  bool
	Clone         bool
	Token         string
	Username      string
}

// MigrationNotesCommand writes one migration note per merged pull request into
// the release folder of the notes repository, committing each one separately.
type MigrationNotesCommand struct {
	newPullRequestRepository repositories.PullRequestRepositoryFactory
	openNotesRepository      repositories.NotesRepositoryOpener
	markdown                 repositories.MarkdownRepository
}

// NewMigrationNotesCommand creates a new MigrationNotesCommand.
func NewMigrationNotesCommand(
	newPullRequestRepository repositories.PullRequestRepositoryFactory,
	openNotesRepository repositories.NotesRepositoryOpener,
	markdown repositories.MarkdownRepository,
) *MigrationNotesCommand {
	return &MigrationNotesCommand{
		newPullRequestRepository: newPullRequestRepository,
		openNotesRepository:      openNotesRepository,
		markdown:                 markdown,
	}
}

// Execute validates everything that can be checked locally, then opens the
// notes repository, prepares the release folder and generates the notes.
func (it *MigrationNotesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MigrationNotesOptions,
) error {
	release, err := entities.NewReleaseLabel(opts.Release)
	if err != nil {
		return fmt.Errorf("the release name is invalid: %w", err)
	}
	if opts.Token == "" {
		return fmt.Errorf("%w: GITHUB_TOKEN not found", entities.ErrMissingCredentials)
	}
	if opts.Username == "" {
		return fmt.Errorf("%w: GITHUB_USERNAME not found", entities.ErrMissingCredentials)
	}

	notes, err := it.openNotesRepository(ctx, repositories.NotesRepositoryOptions{
		LocalPath:  settings.NotesLocalPath().String(),
		Remote:     settings.NotesRepo().Remote(),
		Token:      opts.Token,
		Username:   opts.Username,
		AllowClone: opts.Clone,
	})
	if err != nil {
		return err
	}

	releaseDir := settings.ReleaseDir(release)
	if opts.CreateRelease {
		if _, statErr := os.Stat(releaseDir); errors.Is(statErr, os.ErrNotExist) {
			logger.Infof("Creating release folder %s", releaseDir)
			if mkdirErr := os.MkdirAll(releaseDir, releaseDirMode); mkdirErr != nil {
				return fmt.Errorf("failed to create release folder %s: %w", releaseDir, mkdirErr)
			}
		}
	}

	source := it.newPullRequestRepository(opts.Token, settings.SourceRepo())
	prs := source.ListMerged(ctx, opts.From, opts.To, opts.Label)

	return generateMigrationNotes(settings, release, prs, opts.CreateCommit, notes, it.markdown)
}

// generateMigrationNotes writes a note for every pull request in prs, in the
// order they are yielded, and stops at the first failure. Notes written
// before the failure are kept.
func generateMigrationNotes(
	settings *entities.Settings,
	release entities.ReleaseLabel,
	prs iter.Seq2[entities.PullRequest, error],
	createCommit bool,
	notes repositories.NotesRepository,
	markdown repositories.MarkdownRepository,
) error {
	releaseDir := settings.ReleaseDir(release)
	if info, err := os.Stat(releaseDir); err != nil || !info.IsDir() {
		return fmt.Errorf(
			"%w: %s; use --create-release to create it",
			entities.ErrReleaseFolderMissing, releaseDir,
		)
	}
	if createCommit && notes == nil {
		return errors.New("cannot create commits without a notes repository")
	}

	count := 0
	for pr, err := range prs {
		if err != nil {
			return fmt.Errorf("failed to list pull requests: %w", err)
		}

		logger.Infof("Creating migration note for #%d", pr.Number)
		if noteErr := createMigrationNoteFile(settings, release, pr, createCommit, notes, markdown); noteErr != nil {
			return noteErr
		}
		count++
	}

	logger.Infof("Created %d migration notes in %s", count, releaseDir)
	return nil
}

func createMigrationNoteFile(
	settings *entities.Settings,
	release entities.ReleaseLabel,
	pr entities.PullRequest,
	createCommit bool,
	notes repositories.NotesRepository,
	markdown repositories.MarkdownRepository,
) error {
	content, err := renderMigrationNote(pr, markdown)
	if err != nil {
		return err
	}

	relativePath := settings.NotePath(release, pr.Number)
	absolutePath := settings.NotesLocalPath().Join(filepath.FromSlash(relativePath))
	if writeErr := os.WriteFile(absolutePath, content, noteFileMode); writeErr != nil {
		return fmt.Errorf("%w %s: %w", entities.ErrWriteFailed, absolutePath, writeErr)
	}

	if !createCommit {
		return nil
	}
	return notes.CommitSingleFile(relativePath, entities.MigrationNoteCommitMessage(settings.SourceRepo(), pr))
}

// renderMigrationNote renders the whole note in memory so that a failure never
// leaves a half written file behind.
func renderMigrationNote(pr entities.PullRequest, markdown repositories.MarkdownRepository) ([]byte, error) {
	if pr.Body == nil {
		return nil, fmt.Errorf("%w: #%d", entities.ErrMissingBody, pr.Number)
	}

	var buf bytes.Buffer
	if err := entities.NewMigrationNoteFrontMatter(pr).Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render front matter of #%d: %w", pr.Number, err)
	}

	frontMatterLen := buf.Len()
	if err := markdown.WriteSection(&buf, *pr.Body, entities.MigrationGuideSection, true); err != nil {
		return nil, fmt.Errorf("failed to render the migration guide of #%d: %w", pr.Number, err)
	}
	if buf.Len() == frontMatterLen {
		logger.Warnf("#%d has no %q section, its note only has front matter", pr.Number, entities.MigrationGuideSection)
	}

	return buf.Bytes(), nil
}
