package entities

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	githubHost   = "github.com"
	providerName = "github"
)

var (
	// githubURLPattern captures "owner/name" out of anything that contains
	// "github.com/owner/name", dropping an optional ".git" and trailing slash.
	githubURLPattern = regexp.MustCompile(`github\.com/(?P<repo>.+?)(?:\.git)?/?$`)

	// repoPattern follows GitHub's own account naming rules for the owner.
	repoPattern = regexp.MustCompile(`^([a-zA-Z\d](?:-?[a-zA-Z\d])*-?)/([\w.-]+)$`)
)

// RepoIdentifier is a validated "owner/name" GitHub repository path.
// The zero value is not valid; use NewRepoIdentifier.
type RepoIdentifier struct {
	owner string
	name  string
}

// NewRepoIdentifier normalizes raw (a bare "owner/name", or any URL pointing
// at github.com) and validates what remains.
func NewRepoIdentifier(raw string) (RepoIdentifier, error) {
	candidate := raw
	if match := githubURLPattern.FindStringSubmatch(raw); match != nil {
		candidate = match[githubURLPattern.SubexpIndex("repo")]
	} else {
		candidate = strings.TrimSuffix(candidate, "/")
		candidate = strings.TrimSuffix(candidate, ".git")
	}

	parts := repoPattern.FindStringSubmatch(candidate)
	if parts == nil {
		return RepoIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidRepoIdentifier, candidate)
	}

	return RepoIdentifier{owner: parts[1], name: parts[2]}, nil
}

func (r RepoIdentifier) Owner() string { return r.owner }
func (r RepoIdentifier) Name() string  { return r.name }

// String returns the canonical "owner/name" form.
func (r RepoIdentifier) String() string {
	return r.owner + "/" + r.name
}

// URL returns the HTTPS address of the repository, suitable for cloning.
func (r RepoIdentifier) URL() string {
	return fmt.Sprintf("https://%s/%s/%s", githubHost, r.owner, r.name)
}

// Remote describes the identifier as a hosted repository.
func (r RepoIdentifier) Remote() Repository {
	return Repository{
		ID:           r.String(),
		Name:         r.name,
		Organization: r.owner,
		RemoteURL:    r.URL(),
		ProviderName: providerName,
	}
}
