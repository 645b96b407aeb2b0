package transform

import (
	"path/filepath"
	"strconv"
	"strings"
)

// RStripTrailingNewlines removes trailing newline characters (LF and CR)
// from content.
func RStripTrailingNewlines(content string) string {
	return strings.TrimRight(content, "\r\n")
}

// Dedent removes the longest common leading whitespace from all non-blank
// lines of text, preserving relative indentation. Blank lines are normalized
// neither way; they simply do not participate in computing the margin.
func Dedent(text string) string {
	lines := linesKeepEnds(text)

	margin := ""
	first := true
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		// shrink margin to the common prefix
		max := len(margin)
		if len(indent) < max {
			max = len(indent)
		}
		i := 0
		for i < max && margin[i] == indent[i] {
			i++
		}
		margin = margin[:i]
	}

	if margin == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, line := range lines {
		if isBlank(line) {
			b.WriteString(line)
		} else {
			b.WriteString(strings.TrimPrefix(line, margin))
		}
	}
	return b.String()
}

// IndentLines prefixes every line of text with prefix. Empty text still
// yields the prefix alone, so an empty inclusion keeps its indentation.
func IndentLines(text, prefix string) string {
	if text == "" {
		return prefix
	}
	var b strings.Builder
	b.Grow(len(text) + len(prefix))
	for _, line := range linesKeepEnds(text) {
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

// IndentTailLines prefixes every line except the first with prefix.
func IndentTailLines(text, prefix string) string {
	if text == "" {
		return text
	}
	lines := linesKeepEnds(text)
	var b strings.Builder
	b.Grow(len(text) + len(prefix)*len(lines))
	for i, line := range lines {
		if i > 0 {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

// LinenoFromContentStart returns the 1-based line number at byte offset
// start within content, for directive locator messages.
func LinenoFromContentStart(content string, start int) int {
	return strings.Count(content[:start], "\n") + 1
}

// SafeRelpath returns path relative to start, or path unchanged when no
// relative form exists (different roots).
func SafeRelpath(path, start string) string {
	rel, err := filepath.Rel(start, path)
	if err != nil {
		return path
	}
	return rel
}

// FileLinenoMessage builds the path:line locator used in every engine error
// and warning. Pages not read from a file have no path and are reported as
// generated content.
func FileLinenoMessage(pageSrcPath, docsDir string, lineno int) string {
	if pageSrcPath == "" {
		return "generated page content (line " + strconv.Itoa(lineno) + ")"
	}
	return SafeRelpath(pageSrcPath, docsDir) + ":" + strconv.Itoa(lineno)
}
