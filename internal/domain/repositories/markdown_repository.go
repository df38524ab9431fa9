package repositories

import "io"

// MarkdownRepository extracts a section of a markdown document.
type MarkdownRepository interface {
	// WriteSection writes the content below the heading titled title
	// (case-insensitive) to w. With lintClean the content is rewritten to pass
	// markdownlint. Nothing is written when the section is missing.
	WriteSection(w io.Writer, body, title string, lintClean bool) error
}
