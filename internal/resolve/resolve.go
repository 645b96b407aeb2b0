// Package resolve turns directive include targets into ordered lists of
// absolute file paths. Targets are classified as URL, OS-absolute path,
// explicit-relative path (./ or ../, anchored at the includer page) or
// docs-root-relative path; filesystem targets are expanded with doublestar
// globs (recursive ** and brace sets), filtered against exclusion lists and
// sorted per the order option.
package resolve

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/mdinclude/internal/directive"
	"git.home.luguber.info/inful/mdinclude/internal/errors"
)

// IsURL reports whether s is a URL with both a scheme and a host.
func IsURL(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// IsExplicitRelative reports whether s is anchored at the includer page.
func IsExplicitRelative(s string) bool {
	return strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../")
}

// IsAbsolute reports whether s looks like an OS-absolute path.
func IsAbsolute(s string) bool {
	return strings.HasPrefix(s, "/") || filepath.IsAbs(s)
}

func isRegularFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// globPaths expands pattern on the real filesystem. Patterns that are plain
// existing files short-circuit without glob interpretation so that names
// containing glob metacharacters still resolve literally.
func globPaths(pattern string) []string {
	if isRegularFile(pattern) {
		return []string{pattern}
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil
	}
	return matches
}

// IncludeTargets resolves a directive's include target. It returns either a
// single-element URL result with isURL true, or the ordered, filtered list
// of matching file paths. An error is returned only for an explicit-relative
// target on a page with no source path.
func IncludeTargets(
	pattern string,
	includerPath string,
	docsDir string,
	excludePaths []string,
	order directive.Order,
) (paths []string, isURL bool, err error) {
	if IsURL(pattern) {
		return []string{pattern}, true, nil
	}

	var candidates []string
	switch {
	case IsAbsolute(pattern):
		candidates = globPaths(pattern)
	case IsExplicitRelative(pattern):
		if includerPath == "" {
			return nil, false, errors.Resolutionf(
				"relative include path %q requires an includer page read from a file", pattern)
		}
		root, absErr := filepath.Abs(filepath.Dir(includerPath))
		if absErr != nil {
			root = filepath.Dir(includerPath)
		}
		candidates = globPaths(filepath.Join(root, pattern))
	default:
		candidates = globPaths(filepath.Join(docsDir, pattern))
	}

	return SortPaths(FilterPaths(candidates, excludePaths), order), false, nil
}

// ExcludeTargets resolves an exclude argument to absolute paths. Unlike
// include resolution, globs that match nothing simply contribute nothing.
func ExcludeTargets(pattern, includerPath, docsDir string) ([]string, error) {
	var root string
	switch {
	case IsAbsolute(pattern):
		return cleanAll(globPaths(pattern)), nil
	case IsExplicitRelative(pattern):
		if includerPath == "" {
			return nil, errors.Resolutionf(
				"relative exclude path %q requires an includer page read from a file", pattern)
		}
		dir, err := filepath.Abs(filepath.Dir(includerPath))
		if err != nil {
			dir = filepath.Dir(includerPath)
		}
		root = dir
	default:
		root = docsDir
	}
	return cleanAll(globPaths(filepath.Join(root, pattern))), nil
}

// GlobalExcludes expands the page-level exclude configuration against the
// docs root. Relative globs are anchored at docsDir.
func GlobalExcludes(patterns []string, docsDir string) []string {
	var out []string
	for _, p := range patterns {
		if !filepath.IsAbs(p) {
			p = filepath.Join(docsDir, p)
		}
		out = append(out, cleanAll(globPaths(p))...)
	}
	return out
}

func cleanAll(paths []string) []string {
	for i, p := range paths {
		paths[i] = filepath.Clean(p)
	}
	return paths
}

// FilterPaths removes excluded candidates and directories. A candidate is
// excluded on an exact match or when its immediate parent directory is in
// the exclusion list. The survivors come back sorted lexicographically, the
// baseline every order option refines.
func FilterPaths(candidates, excludePaths []string) []string {
	excluded := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		excluded[p] = true
	}

	var out []string
	for _, p := range candidates {
		if excluded[p] || excluded[filepath.Dir(p)] {
			continue
		}
		if st, err := os.Stat(p); err != nil || st.IsDir() {
			continue
		}
		out = append(out, p)
	}
	sortStrings(out)
	return out
}
