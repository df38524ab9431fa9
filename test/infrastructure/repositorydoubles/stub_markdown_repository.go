//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"io"

	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

// StubMarkdownRepository implements repositories.MarkdownRepository by
// writing a canned output.
type StubMarkdownRepository struct {
	Output string
	Err    error

	// spy
	Titles []string
}

var _ repositories.MarkdownRepository = (*StubMarkdownRepository)(nil)

func (s *StubMarkdownRepository) WriteSection(w io.Writer, _, title string, _ bool) error {
	s.Titles = append(s.Titles, title)
	if s.Err != nil {
		return s.Err
	}
	_, err := io.WriteString(w, s.Output)
	return err
}
