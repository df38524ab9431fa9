package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/relgen/config"
	"github.com/rios0rios0/relgen/internal/domain/commands"
	"github.com/rios0rios0/relgen/internal/domain/entities"
)

const defaultBreakingChangeLabel = "C-Breaking-Change"

// MigrationNotesController handles the "migration-notes" subcommand.
type MigrationNotesController struct {
	command commands.MigrationNotes
}

// NewMigrationNotesController creates a new MigrationNotesController.
func NewMigrationNotesController(command commands.MigrationNotes) *MigrationNotesController {
	return &MigrationNotesController{command: command}
}

// GetBind returns the Cobra command metadata for the migration-notes controller.
func (it *MigrationNotesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "migration-notes",
		Short: "Generate one migration note per breaking pull request",
		Long: `Collect the pull requests merged between two refs of the source repository
and write the "Migration Guide" section of each one into its own file in
the release folder of the migration notes repository.

Every note is committed separately, crediting the pull request author.

Requires GITHUB_TOKEN (or GH_TOKEN) and GITHUB_USERNAME, which can also be
set in a .env file.`,
	}
}

// AddFlags adds the migration-notes flags to the given Cobra command.
func (it *MigrationNotesController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("release", "r", "", "Name of the release folder, e.g. 0.10")
	cmd.Flags().String("from", "", "Branch, tag or commit to start from")
	cmd.Flags().String("to", "", "Branch, tag or commit to end on")
	cmd.Flags().String("label", defaultBreakingChangeLabel,
		"Only pull requests with this label get a note (empty for all)")
	cmd.Flags().Bool("create-release", false,
		"Create the release folder if it does not exist yet")
	cmd.Flags().Bool("clone", false,
		"Clone the migration notes repository if it does not exist locally")
	cmd.Flags().Bool("no-create-commit", false,
		"Write the notes without committing them")

	_ = cmd.MarkFlagRequired("release")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

// Execute loads the settings and generates the migration notes.
func (it *MigrationNotesController) Execute(cmd *cobra.Command, _ []string) error {
	release, _ := cmd.Flags().GetString("release")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	label, _ := cmd.Flags().GetString("label")
	createRelease, _ := cmd.Flags().GetBool("create-release")
	clone, _ := cmd.Flags().GetBool("clone")
	noCreateCommit, _ := cmd.Flags().GetBool("no-create-commit")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	token, username := config.Credentials()

	return it.command.Execute(cmd.Context(), settings, commands.MigrationNotesOptions{
		Release:       release,
		From:          from,
		To:            to,
		Label:         label,
		CreateRelease: createRelease,
		CreateCommit:  !noCreateCommit,
		Clone:         clone,
		Token:         token,
		Username:      username,
	})
}
