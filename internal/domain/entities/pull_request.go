package entities

import (
	"sort"
	"strings"
)

const areaLabelPrefix = "A-"

// PullRequest is the read-only view of a merged pull request as yielded by the
// pull request source.
type PullRequest struct {
	Number   int
	Title    string
	Body     *string // nil when the pull request has no description
	ClosedAt string  // RFC 3339, as reported by the provider
	User     User
	Labels   []string
}

// User is the author of a pull request.
type User struct {
	Login string
	ID    int64
}

// HasLabel reports whether the pull request carries the given label.
func (pr PullRequest) HasLabel(label string) bool {
	for _, l := range pr.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Areas returns the area tags of the pull request: every "A-" label with the
// prefix removed, sorted.
func (pr PullRequest) Areas() []string {
	var areas []string
	for _, label := range pr.Labels {
		if area, ok := strings.CutPrefix(label, areaLabelPrefix); ok && area != "" {
			areas = append(areas, area)
		}
	}
	sort.Strings(areas)
	return areas
}
