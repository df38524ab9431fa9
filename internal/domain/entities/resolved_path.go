package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var absolutePathPattern = regexp.MustCompile(`^/|^[A-Za-z]:[/\\]`)

// ResolvedPath is an absolute path whose existing prefix is canonical (no
// symlinks, no "." or ".." segments). Components that do not exist yet are
// appended as given, because canonicalization needs the path to exist.
type ResolvedPath struct {
	value string
}

// ResolvePath resolves raw against baseDir (only consulted when raw is
// relative) and canonicalizes as much of the result as exists on disk.
func ResolvePath(raw, baseDir string) (ResolvedPath, error) {
	path := raw
	if !absolutePathPattern.MatchString(raw) {
		if baseDir == "" {
			return ResolvedPath{}, fmt.Errorf("%w: %q", ErrMissingBaseDir, raw)
		}
		path = filepath.Join(baseDir, raw)
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return ResolvedPath{}, fmt.Errorf("%w: %q: %w", ErrCanonicalizationFailed, raw, err)
		}
		path = abs
	}

	root, components := splitPath(path)
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return ResolvedPath{}, fmt.Errorf("%w: %q: %w", ErrCanonicalizationFailed, raw, err)
	}

	// walk from the root downwards and stop at the first ancestor that cannot be canonicalized
	existing := 0
	for ; existing < len(components); existing++ {
		next, evalErr := filepath.EvalSymlinks(filepath.Join(resolved, components[existing]))
		if evalErr != nil {
			break
		}
		resolved = next
	}

	tail := components[existing:]
	return ResolvedPath{value: filepath.Join(append([]string{resolved}, tail...)...)}, nil
}

// splitPath breaks an absolute path into its root ("/" or "C:\") and the
// non-empty components below it.
func splitPath(path string) (string, []string) {
	volume := filepath.VolumeName(path)
	rest := path[len(volume):]

	var components []string
	for _, component := range strings.FieldsFunc(rest, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	}) {
		if component == "." {
			continue
		}
		components = append(components, component)
	}

	return volume + string(filepath.Separator), components
}

func (p ResolvedPath) String() string { return p.value }

// Join appends elements to the resolved path without canonicalizing them.
func (p ResolvedPath) Join(elem ...string) string {
	return filepath.Join(append([]string{p.value}, elem...)...)
}
