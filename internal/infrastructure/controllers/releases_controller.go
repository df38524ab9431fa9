package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/relgen/internal/domain/commands"
	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// ReleasesController handles the "releases" subcommand.
type ReleasesController struct {
	command commands.Releases
}

// NewReleasesController creates a new ReleasesController.
func NewReleasesController(command commands.Releases) *ReleasesController {
	return &ReleasesController{command: command}
}

// GetBind returns the Cobra command metadata for the releases controller.
func (it *ReleasesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "releases",
		Short: "List the release folders of the migration notes repository",
		Long: `Print the release folders found in the migration notes repository,
newest version first.`,
	}
}

// AddFlags adds no flags: the releases command only uses the global ones.
func (it *ReleasesController) AddFlags(_ *cobra.Command) {}

// Execute prints one release per line.
func (it *ReleasesController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	releases, err := it.command.Execute(cmd.Context(), settings)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		logger.Infof("No releases found in %s", settings.ReleasesRoot())
		return nil
	}

	for _, release := range releases {
		if _, printErr := fmt.Fprintln(cmd.OutOrStdout(), release); printErr != nil {
			return printErr
		}
	}
	return nil
}
