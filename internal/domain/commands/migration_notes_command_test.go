//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/relgen/internal/domain/commands"
	"github.com/rios0rios0/relgen/internal/domain/entities"
	"github.com/rios0rios0/relgen/internal/infrastructure/repositories/markdown"
	"github.com/rios0rios0/relgen/internal/infrastructure/repositories/session"
	"github.com/rios0rios0/relgen/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/relgen/test/infrastructure/repositorydoubles"
)

const (
	migrationBody = "Rename `foo` to `bar`.\n"
	expectedNote  = "+++\n" +
		"pr = 1234\n" +
		"title = \"Fix X\"\n" +
		"close_date = \"2024-01-01T00:00:00Z\"\n" +
		"+++\n" +
		migrationBody
)

func newSettings(t *testing.T, dir, prefix string) *entities.Settings {
	t.Helper()

	raw := map[string]string{
		entities.SourceRepoKey:              "bevyengine/bevy",
		entities.MigrationNotesRepoKey:      "https://github.com/bevyengine/bevy-website.git",
		entities.MigrationNotesLocalPathKey: dir,
	}
	if prefix != "" {
		raw[entities.ProjectPrefixKey] = prefix
	}
	settings, err := entities.AssembleSettings(raw, "")
	require.NoError(t, err)
	return settings
}

func newRelease(t *testing.T, name string) entities.ReleaseLabel {
	t.Helper()

	release, err := entities.NewReleaseLabel(name)
	require.NoError(t, err)
	return release
}

func readNote(t *testing.T, settings *entities.Settings, relativePath string) string {
	t.Helper()

	content, err := os.ReadFile(settings.NotesLocalPath().Join(filepath.FromSlash(relativePath)))
	require.NoError(t, err)
	return string(content)
}

func TestGenerateMigrationNotes(t *testing.T) {
	t.Parallel()

	t.Run("should write the note of a pull request without areas", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		source := &doubles.StubPullRequestRepository{
			PullRequests: []entities.PullRequest{entitybuilders.NewPullRequestBuilder().BuildPullRequest()},
		}
		md := &doubles.StubMarkdownRepository{Output: migrationBody}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "v0.9.0", "main", ""), false, nil, md,
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, expectedNote, readNote(t, settings, "0.10/1234.md"))
		assert.Equal(t, []string{"migration guide"}, md.Titles)
	})

	t.Run("should list the areas of the pull request", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		pr := entitybuilders.NewPullRequestBuilder().
			WithTitle(`Rename "foo"`).
			WithLabels("C-Breaking-Change", "A-Rendering", "A-ECS").
			BuildPullRequest()
		source := &doubles.StubPullRequestRepository{PullRequests: []entities.PullRequest{pr}}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), false, nil,
			&doubles.StubMarkdownRepository{Output: migrationBody},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, "+++\n"+
			"pr = 1234\n"+
			"title = \"Rename \\\"foo\\\"\"\n"+
			"close_date = \"2024-01-01T00:00:00Z\"\n"+
			"areas = [\"ECS\", \"Rendering\"]\n"+
			"+++\n"+
			migrationBody, readNote(t, settings, "0.10/1234.md"))
	})

	t.Run("should overwrite the same files when run twice", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		prs := []entities.PullRequest{
			entitybuilders.NewPullRequestBuilder().WithNumber(1).BuildPullRequest(),
			entitybuilders.NewPullRequestBuilder().WithNumber(2).BuildPullRequest(),
		}
		md := &doubles.StubMarkdownRepository{Output: migrationBody}

		// when
		for range 2 {
			source := &doubles.StubPullRequestRepository{PullRequests: prs}
			require.NoError(t, commands.GenerateMigrationNotes(
				settings, release, source.ListMerged(context.Background(), "", "", ""), false, nil, md,
			))
		}

		// then
		entries, err := os.ReadDir(settings.ReleaseDir(release))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "1.md", entries[0].Name())
		assert.Equal(t, "2.md", entries[1].Name())
		assert.Equal(t, strings.Replace(expectedNote, "pr = 1234", "pr = 1", 1), readNote(t, settings, "0.10/1.md"))
	})

	t.Run("should commit every note with the relative path and co-author trailer", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "migration-guides")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		source := &doubles.StubPullRequestRepository{PullRequests: []entities.PullRequest{
			entitybuilders.NewPullRequestBuilder().WithNumber(1234).WithUser("Octo-Cat", 42).BuildPullRequest(),
			entitybuilders.NewPullRequestBuilder().WithNumber(1300).WithUser("alice", 7).BuildPullRequest(),
		}}
		notes := &doubles.SpyNotesRepository{}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), true, notes,
			&doubles.StubMarkdownRepository{Output: migrationBody},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.Commit{
			{
				Path: "migration-guides/0.10/1234.md",
				Message: "Create migration note for bevyengine/bevy#1234\n\n" +
					"Co-authored-by: Octo-Cat <42+octo-cat@users.noreply.github.com>",
			},
			{
				Path: "migration-guides/0.10/1300.md",
				Message: "Create migration note for bevyengine/bevy#1300\n\n" +
					"Co-authored-by: alice <7+alice@users.noreply.github.com>",
			},
		}, notes.Commits)
		assert.Equal(t, expectedNote, readNote(t, settings, "migration-guides/0.10/1234.md"))
	})

	t.Run("should fail without writing when the release folder is missing", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		source := &doubles.StubPullRequestRepository{
			PullRequests: []entities.PullRequest{entitybuilders.NewPullRequestBuilder().BuildPullRequest()},
		}
		notes := &doubles.SpyNotesRepository{}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), true, notes,
			&doubles.StubMarkdownRepository{Output: migrationBody},
		)

		// then
		require.ErrorIs(t, err, entities.ErrReleaseFolderMissing)
		assert.Contains(t, err.Error(), "--create-release")
		assert.Zero(t, source.Yielded)
		assert.Empty(t, notes.Commits)
		assert.NoDirExists(t, settings.ReleaseDir(release))
	})

	t.Run("should stop at a pull request without body and keep earlier notes", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		source := &doubles.StubPullRequestRepository{PullRequests: []entities.PullRequest{
			entitybuilders.NewPullRequestBuilder().WithNumber(1).BuildPullRequest(),
			entitybuilders.NewPullRequestBuilder().WithNumber(2).WithoutBody().BuildPullRequest(),
			entitybuilders.NewPullRequestBuilder().WithNumber(3).BuildPullRequest(),
		}}
		notes := &doubles.SpyNotesRepository{}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), true, notes,
			&doubles.StubMarkdownRepository{Output: migrationBody},
		)

		// then
		require.ErrorIs(t, err, entities.ErrMissingBody)
		assert.Contains(t, err.Error(), "#2")
		assert.FileExists(t, settings.NotesLocalPath().Join("0.10", "1.md"))
		assert.NoFileExists(t, settings.NotesLocalPath().Join("0.10", "2.md"))
		assert.NoFileExists(t, settings.NotesLocalPath().Join("0.10", "3.md"))
		assert.Len(t, notes.Commits, 1)
		assert.Equal(t, 2, source.Yielded)
	})

	t.Run("should abort the batch when a commit fails", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		source := &doubles.StubPullRequestRepository{PullRequests: []entities.PullRequest{
			entitybuilders.NewPullRequestBuilder().WithNumber(1).BuildPullRequest(),
			entitybuilders.NewPullRequestBuilder().WithNumber(2).BuildPullRequest(),
		}}
		notes := &doubles.SpyNotesRepository{CommitErr: entities.ErrCommitFailed}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), true, notes,
			&doubles.StubMarkdownRepository{Output: migrationBody},
		)

		// then
		require.ErrorIs(t, err, entities.ErrCommitFailed)
		assert.Equal(t, 1, source.Yielded)
	})

	t.Run("should surface errors of the pull request source", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.ReleaseDir(release), 0o755))
		sourceErr := errors.New("rate limited")
		source := &doubles.StubPullRequestRepository{Err: sourceErr}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), false, nil,
			&doubles.StubMarkdownRepository{},
		)

		// then
		require.ErrorIs(t, err, sourceErr)
	})

	t.Run("should report a write failure", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		release := newRelease(t, "0.10")
		require.NoError(t, os.MkdirAll(settings.NotesLocalPath().Join("0.10", "1234.md"), 0o755))
		source := &doubles.StubPullRequestRepository{
			PullRequests: []entities.PullRequest{entitybuilders.NewPullRequestBuilder().BuildPullRequest()},
		}

		// when
		err := commands.GenerateMigrationNotes(
			settings, release, source.ListMerged(context.Background(), "", "", ""), false, nil,
			&doubles.StubMarkdownRepository{Output: migrationBody},
		)

		// then
		require.ErrorIs(t, err, entities.ErrWriteFailed)
	})
}

func TestMigrationNotesCommandExecute(t *testing.T) {
	t.Parallel()

	validOptions := func() commands.MigrationNotesOptions {
		return commands.MigrationNotesOptions{
			Release:      "0.10",
			From:         "v0.9.0",
			To:           "main",
			Label:        "C-Breaking-Change",
			CreateCommit: true,
			Token:        "ghp_token",
			Username:     "release-bot",
		}
	}

	t.Run("should reject an invalid release before touching the repository", func(t *testing.T) {
		t.Parallel()

		// given
		notes := &doubles.SpyNotesRepository{}
		source := &doubles.StubPullRequestRepository{}
		cmd := commands.NewMigrationNotesCommand(source.Factory(), notes.Opener(), &doubles.StubMarkdownRepository{})
		opts := validOptions()
		opts.Release = "../etc"

		// when
		err := cmd.Execute(context.Background(), newSettings(t, t.TempDir(), ""), opts)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidLabel)
		assert.Empty(t, notes.OpenedWith)
		assert.Empty(t, source.Requests)
	})

	t.Run("should require credentials before touching the repository", func(t *testing.T) {
		t.Parallel()

		// given
		notes := &doubles.SpyNotesRepository{}
		cmd := commands.NewMigrationNotesCommand(
			(&doubles.StubPullRequestRepository{}).Factory(), notes.Opener(), &doubles.StubMarkdownRepository{},
		)
		opts := validOptions()
		opts.Token = ""

		// when
		err := cmd.Execute(context.Background(), newSettings(t, t.TempDir(), ""), opts)

		// then
		require.ErrorIs(t, err, entities.ErrMissingCredentials)
		assert.Contains(t, err.Error(), "GITHUB_TOKEN")
		assert.Empty(t, notes.OpenedWith)
	})

	t.Run("should create the release folder and generate the notes", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		notes := &doubles.SpyNotesRepository{}
		source := &doubles.StubPullRequestRepository{
			PullRequests: []entities.PullRequest{entitybuilders.NewPullRequestBuilder().BuildPullRequest()},
		}
		cmd := commands.NewMigrationNotesCommand(
			source.Factory(), notes.Opener(), &doubles.StubMarkdownRepository{Output: migrationBody},
		)
		opts := validOptions()
		opts.CreateRelease = true
		opts.Clone = true

		// when
		err := cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		require.Len(t, notes.OpenedWith, 1)
		assert.Equal(t, settings.NotesLocalPath().String(), notes.OpenedWith[0].LocalPath)
		assert.Equal(t, "https://github.com/bevyengine/bevy-website", notes.OpenedWith[0].Remote.RemoteURL)
		assert.True(t, notes.OpenedWith[0].AllowClone)
		assert.Equal(t, "release-bot", notes.OpenedWith[0].Username)
		assert.Equal(t, "ghp_token", source.Token)
		assert.Equal(t, "bevyengine/bevy", source.Repo.String())
		assert.Equal(t, []doubles.ListRequest{{From: "v0.9.0", To: "main", Label: "C-Breaking-Change"}}, source.Requests)
		assert.Len(t, notes.Commits, 1)
		assert.Equal(t, expectedNote, readNote(t, settings, "0.10/1234.md"))
	})

	t.Run("should not create the release folder unless asked to", func(t *testing.T) {
		t.Parallel()

		// given
		settings := newSettings(t, t.TempDir(), "")
		notes := &doubles.SpyNotesRepository{}
		cmd := commands.NewMigrationNotesCommand(
			(&doubles.StubPullRequestRepository{}).Factory(), notes.Opener(), &doubles.StubMarkdownRepository{},
		)

		// when
		err := cmd.Execute(context.Background(), settings, validOptions())

		// then
		require.ErrorIs(t, err, entities.ErrReleaseFolderMissing)
		assert.NoDirExists(t, settings.ReleaseDir(newRelease(t, "0.10")))
	})

	t.Run("should propagate a failure to open the notes repository", func(t *testing.T) {
		t.Parallel()

		// given
		notes := &doubles.SpyNotesRepository{OpenErr: entities.ErrRepositoryNotFound}
		source := &doubles.StubPullRequestRepository{}
		cmd := commands.NewMigrationNotesCommand(source.Factory(), notes.Opener(), &doubles.StubMarkdownRepository{})

		// when
		err := cmd.Execute(context.Background(), newSettings(t, t.TempDir(), ""), validOptions())

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryNotFound)
		assert.Empty(t, source.Requests)
	})

	t.Run("should chain one git commit per note in a real working copy", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		cfg, err := repo.Config()
		require.NoError(t, err)
		cfg.User.Name = "Release Bot"
		cfg.User.Email = "release-bot@example.com"
		require.NoError(t, repo.SetConfig(cfg))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes\n"), 0o644))
		worktree, err := repo.Worktree()
		require.NoError(t, err)
		_, err = worktree.Add("README.md")
		require.NoError(t, err)
		signature := &object.Signature{Name: "Release Bot", Email: "release-bot@example.com", When: time.Now()}
		initial, err := worktree.Commit("initial", &git.CommitOptions{Author: signature, Committer: signature})
		require.NoError(t, err)

		settings := newSettings(t, dir, "")
		source := &doubles.StubPullRequestRepository{PullRequests: []entities.PullRequest{
			entitybuilders.NewPullRequestBuilder().WithNumber(1).WithUser("Alice", 7).BuildPullRequest(),
			entitybuilders.NewPullRequestBuilder().WithNumber(2).WithUser("Bob", 8).BuildPullRequest(),
		}}
		cmd := commands.NewMigrationNotesCommand(source.Factory(), session.OpenOrClone, markdown.NewMarkdownRepository())
		opts := validOptions()
		opts.CreateRelease = true

		// when
		err = cmd.Execute(context.Background(), settings, opts)

		// then
		require.NoError(t, err)
		head, err := repo.Head()
		require.NoError(t, err)
		second, err := repo.CommitObject(head.Hash())
		require.NoError(t, err)
		assert.Contains(t, second.Message, "bevyengine/bevy#2")
		assert.Contains(t, second.Message, "<8+bob@users.noreply.github.com>")
		require.Len(t, second.ParentHashes, 1)
		first, err := repo.CommitObject(second.ParentHashes[0])
		require.NoError(t, err)
		assert.Contains(t, first.Message, "bevyengine/bevy#1")
		assert.Equal(t, []plumbing.Hash{initial}, first.ParentHashes)

		file, err := second.File("0.10/2.md")
		require.NoError(t, err)
		content, err := file.Contents()
		require.NoError(t, err)
		assert.Contains(t, content, "pr = 2\n")
		assert.Contains(t, content, migrationBody)
	})
}
