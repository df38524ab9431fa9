package entities

import (
	"fmt"
	"regexp"
)

var labelPattern = regexp.MustCompile(`^[\w][\w.-]*$`)

// ReleaseLabel is a single path segment naming a release ("0.10.0") or a
// project prefix. The grammar admits no path separators, so a label can never
// point outside the folder it is joined onto.
type ReleaseLabel struct {
	value string
}

// NewReleaseLabel validates raw against the label grammar.
func NewReleaseLabel(raw string) (ReleaseLabel, error) {
	if !labelPattern.MatchString(raw) {
		return ReleaseLabel{}, fmt.Errorf("%w: %q", ErrInvalidLabel, raw)
	}
	return ReleaseLabel{value: raw}, nil
}

func (l ReleaseLabel) String() string { return l.value }
