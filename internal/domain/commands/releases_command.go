package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// Releases is the interface for the releases command.
type Releases interface {
	Execute(ctx context.Context, settings *entities.Settings) ([]entities.ReleaseLabel, error)
}

// ReleasesCommand lists the release folders already present in the notes repository.
type ReleasesCommand struct{}

// NewReleasesCommand creates a new ReleasesCommand.
func NewReleasesCommand() *ReleasesCommand {
	return &ReleasesCommand{}
}

// Execute returns the release folders, newest version first.
func (it *ReleasesCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) ([]entities.ReleaseLabel, error) {
	root := settings.ReleasesRoot()
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Releases folder %s does not exist", root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read releases folder %s: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sortVersionsDescending(names)

	releases := make([]entities.ReleaseLabel, 0, len(names))
	for _, name := range names {
		release, labelErr := entities.NewReleaseLabel(name)
		if labelErr != nil {
			logger.Debugf("Skipping %s: %v", name, labelErr)
			continue
		}
		releases = append(releases, release)
	}

	return releases, nil
}

// sortVersionsDescending puts semantic versions first, newest to oldest, and
// everything else after them in reverse lexical order.
func sortVersionsDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])
		valid1, valid2 := semver.IsValid(v1), semver.IsValid(v2)
		switch {
		case valid1 && valid2:
			if c := semver.Compare(v1, v2); c != 0 {
				return c > 0
			}
			return versions[i] > versions[j]
		case valid1 != valid2:
			return valid1
		default:
			return versions[i] > versions[j]
		}
	})
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
