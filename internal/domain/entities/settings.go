package entities

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Keys understood by AssembleSettings.
const (
	SourceRepoKey              = "source_repo"
	MigrationNotesRepoKey      = "migration_notes_repo"
	MigrationNotesLocalPathKey = "migration_notes_local_path"
	ProjectPrefixKey           = "project_prefix"
)

// Settings is the validated configuration of one invocation. It is built once
// by AssembleSettings and never mutated afterwards.
type Settings struct {
	sourceRepo     RepoIdentifier
	notesRepo      RepoIdentifier
	notesLocalPath ResolvedPath
	projectPrefix  *ReleaseLabel
}

// AssembleSettings validates the raw key/value configuration. Relative paths
// are resolved against baseDir. Either every value is valid and a Settings is
// returned, or the first problem found is reported.
func AssembleSettings(raw map[string]string, baseDir string) (*Settings, error) {
	sourceValue, err := requireKey(raw, SourceRepoKey)
	if err != nil {
		return nil, err
	}
	sourceRepo, err := NewRepoIdentifier(sourceValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SourceRepoKey, err)
	}

	notesValue, err := requireKey(raw, MigrationNotesRepoKey)
	if err != nil {
		return nil, err
	}
	notesRepo, err := NewRepoIdentifier(notesValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MigrationNotesRepoKey, err)
	}

	pathValue, err := requireKey(raw, MigrationNotesLocalPathKey)
	if err != nil {
		return nil, err
	}
	notesLocalPath, err := ResolvePath(pathValue, baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MigrationNotesLocalPathKey, err)
	}

	var projectPrefix *ReleaseLabel
	if prefixValue := strings.TrimSpace(raw[ProjectPrefixKey]); prefixValue != "" {
		prefix, prefixErr := NewReleaseLabel(prefixValue)
		if prefixErr != nil {
			return nil, fmt.Errorf("%s: %w", ProjectPrefixKey, prefixErr)
		}
		projectPrefix = &prefix
	}

	return &Settings{
		sourceRepo:     sourceRepo,
		notesRepo:      notesRepo,
		notesLocalPath: notesLocalPath,
		projectPrefix:  projectPrefix,
	}, nil
}

func requireKey(raw map[string]string, key string) (string, error) {
	value := strings.TrimSpace(raw[key])
	if value == "" {
		return "", fmt.Errorf("%w: no %s specified", ErrMissingRequiredKey, key)
	}
	return value, nil
}

func (s *Settings) SourceRepo() RepoIdentifier   { return s.sourceRepo }
func (s *Settings) NotesRepo() RepoIdentifier    { return s.notesRepo }
func (s *Settings) NotesLocalPath() ResolvedPath { return s.notesLocalPath }

// ProjectPrefix returns the optional folder every release lives under.
func (s *Settings) ProjectPrefix() (ReleaseLabel, bool) {
	if s.projectPrefix == nil {
		return ReleaseLabel{}, false
	}
	return *s.projectPrefix, true
}

// ReleasesRoot is the absolute folder holding the release folders.
func (s *Settings) ReleasesRoot() string {
	if prefix, ok := s.ProjectPrefix(); ok {
		return s.notesLocalPath.Join(prefix.String())
	}
	return s.notesLocalPath.String()
}

// ReleaseDir is the absolute folder of the given release.
func (s *Settings) ReleaseDir(release ReleaseLabel) string {
	return s.notesLocalPath.Join(s.releasePath(release))
}

// NotePath is the path of a pull request's note relative to the working copy
// root, always slash separated: "[prefix/]release/<number>.md".
func (s *Settings) NotePath(release ReleaseLabel, number int) string {
	return path.Join(s.releasePath(release), strconv.Itoa(number)+".md")
}

func (s *Settings) releasePath(release ReleaseLabel) string {
	if prefix, ok := s.ProjectPrefix(); ok {
		return path.Join(prefix.String(), release.String())
	}
	return release.String()
}
