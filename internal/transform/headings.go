package transform

import "strings"

// IncreaseHeadingsOffset rewrites the depth of Markdown headings by offset
// levels. An offset of 0 is a no-op. Positive offsets prepend '#' characters;
// negative offsets strip up to abs(offset) of them, clamping at one so a
// heading never disappears. Fenced code blocks are skipped; indented code
// lines are naturally immune because they do not start with '#' at column
// zero.
func IncreaseHeadingsOffset(markdown string, offset int) string {
	if offset == 0 {
		return markdown
	}

	if offset > 0 {
		prefix := strings.Repeat("#", offset)
		return TransformLines(markdown, func(line string) string {
			if strings.HasPrefix(line, "#") {
				return prefix + line
			}
			return line
		})
	}

	strip := -offset
	return TransformLines(markdown, func(line string) string {
		if !strings.HasPrefix(line, "#") {
			return line
		}
		level := len(line) - len(strings.TrimLeft(line, "#"))
		keep := level - strip
		if keep < 1 {
			keep = 1
		}
		return line[level-keep:]
	})
}
