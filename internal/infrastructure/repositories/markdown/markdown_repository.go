package markdown

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

var (
	fencePattern         = regexp.MustCompile("^\\s{0,3}(```|~~~)")
	atxHeadingPattern    = regexp.MustCompile(`^\s{0,3}#{1,6}(\s|$)`)
	bulletPattern        = regexp.MustCompile(`^(\s*)[*+](\s+)`)
	listItemPattern      = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+`)
	thematicBreakPattern = regexp.MustCompile(`^\s{0,3}([-*_])(\s*([-*_])){2,}\s*$`)
	setextPattern        = regexp.MustCompile(`^\s{0,3}(=+|-+)\s*$`)
)

// MarkdownRepository extracts sections of pull request descriptions.
type MarkdownRepository struct {
	md goldmark.Markdown
}

// NewMarkdownRepository creates a MarkdownRepository with a CommonMark parser.
func NewMarkdownRepository() repositories.MarkdownRepository {
	return &MarkdownRepository{md: goldmark.New()}
}

// WriteSection writes the lines between the heading titled title and the next
// heading of the same or a higher level.
func (r *MarkdownRepository) WriteSection(w io.Writer, body, title string, lintClean bool) error {
	source := []byte(strings.ReplaceAll(body, "\r\n", "\n"))
	lines := strings.Split(string(source), "\n")

	start, end, found := r.findSection(source, title)
	if !found {
		return nil
	}

	section := lines[start:min(end, len(lines))]
	if lintClean {
		section = cleanLines(section)
	} else {
		section = trimBlankLines(section)
	}
	if len(section) == 0 {
		return nil
	}

	_, err := io.WriteString(w, strings.Join(section, "\n")+"\n")
	return err
}

// findSection returns the line range [start, end) holding the section content.
// Only top-level headings are considered, so "#" inside code blocks or quotes
// never starts or ends a section.
func (r *MarkdownRepository) findSection(source []byte, title string) (int, int, bool) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	start, level := -1, 0
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			continue
		}
		line := lineOf(source, heading.Lines().At(0).Start)

		if start >= 0 {
			if heading.Level <= level {
				return start, line, true
			}
			continue
		}

		if normalizeTitle(string(heading.Lines().Value(source))) == normalizeTitle(title) {
			level = heading.Level
			start = line + 1
			if isSetext(source, line) {
				start++
			}
		}
	}

	if start < 0 {
		return 0, 0, false
	}
	return start, bytes.Count(source, []byte("\n")) + 1, true
}

func lineOf(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte("\n"))
}

func isSetext(source []byte, line int) bool {
	lines := strings.Split(string(source), "\n")
	if atxHeadingPattern.MatchString(lines[line]) {
		return false
	}
	return line+1 < len(lines) && setextPattern.MatchString(lines[line+1])
}

func normalizeTitle(title string) string {
	title = strings.NewReplacer("*", "", "_", "", "`", "").Replace(title)
	return strings.ToLower(strings.TrimSpace(title))
}

// cleanLines rewrites a markdown fragment so markdownlint accepts it: no
// trailing spaces, dash bullets, blank lines around headings, fences and lists,
// no consecutive blank lines. Fenced code is copied untouched.
func cleanLines(lines []string) []string {
	var out []string
	inFence := false
	fenceMarker := ""

	for i, line := range lines {
		if match := fencePattern.FindStringSubmatch(line); match != nil {
			if !inFence {
				out = ensureBlankLine(out)
				out = append(out, strings.TrimRight(line, " \t"))
				inFence, fenceMarker = true, match[1]
				continue
			}
			if match[1] == fenceMarker {
				out = append(out, strings.TrimRight(line, " \t"))
				out = append(out, "")
				inFence = false
				continue
			}
		}
		if inFence {
			out = append(out, line)
			continue
		}

		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
		case atxHeadingPattern.MatchString(line):
			out = ensureBlankLine(out)
			out = append(out, strings.TrimSpace(line), "")
		case i+1 < len(lines) && setextPattern.MatchString(lines[i+1]) && !listItemPattern.MatchString(line):
			// the underline is handled on the next iteration
			out = ensureBlankLine(out)
			out = append(out, line)
		case setextPattern.MatchString(line) && len(out) > 0 && out[len(out)-1] != "":
			out = append(out, line, "")
		case thematicBreakPattern.MatchString(line):
			out = ensureBlankLine(out)
			out = append(out, strings.TrimSpace(line), "")
		case listItemPattern.MatchString(line):
			if !strings.HasPrefix(line, " ") && len(out) > 0 && out[len(out)-1] != "" &&
				!listItemPattern.MatchString(out[len(out)-1]) && !strings.HasPrefix(out[len(out)-1], " ") {
				out = append(out, "")
			}
			out = append(out, bulletPattern.ReplaceAllString(line, "$1-$2"))
		default:
			out = append(out, line)
		}
	}

	return trimBlankLines(collapseBlankLines(out))
}

func ensureBlankLine(out []string) []string {
	if len(out) > 0 && out[len(out)-1] != "" {
		return append(out, "")
	}
	return out
}

func collapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func trimBlankLines(lines []string) []string {
	first, last := 0, len(lines)
	for first < last && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	for last > first && strings.TrimSpace(lines[last-1]) == "" {
		last--
	}
	return lines[first:last]
}
