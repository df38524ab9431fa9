package entities

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	frontMatterDelimiter = "+++\n"

	// MigrationGuideSection is the PR description heading holding the note body.
	MigrationGuideSection = "migration guide"
)

// MigrationNoteFrontMatter is the metadata block written at the top of every note.
type MigrationNoteFrontMatter struct {
	PR        int      `toml:"pr"`
	Title     string   `toml:"title"`
	CloseDate string   `toml:"close_date"`
	Areas     []string `toml:"areas,omitempty"`
}

// NewMigrationNoteFrontMatter collects the metadata of pr.
func NewMigrationNoteFrontMatter(pr PullRequest) MigrationNoteFrontMatter {
	return MigrationNoteFrontMatter{
		PR:        pr.Number,
		Title:     pr.Title,
		CloseDate: pr.ClosedAt,
		Areas:     pr.Areas(),
	}
}

// Render writes the "+++" delimited TOML block.
func (f MigrationNoteFrontMatter) Render(w io.Writer) error {
	if _, err := io.WriteString(w, frontMatterDelimiter); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("failed to encode front matter: %w", err)
	}
	_, err := io.WriteString(w, frontMatterDelimiter)
	return err
}

// MigrationNoteCommitMessage is the message of the commit adding pr's note.
// The trailer credits the PR author with the noreply address GitHub
// attributes to their account.
func MigrationNoteCommitMessage(sourceRepo RepoIdentifier, pr PullRequest) string {
	return fmt.Sprintf(
		"Create migration note for %s#%d\n\nCo-authored-by: %s <%d+%s@users.noreply.github.com>",
		sourceRepo, pr.Number,
		pr.User.Login, pr.User.ID, strings.ToLower(pr.User.Login),
	)
}
