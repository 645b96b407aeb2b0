// Package transform implements the text transformations applied to included
// Markdown content: code-block-aware region walking, delimiter slicing,
// relative-link rewriting, heading-offset rewriting, dedenting and
// trailing-newline handling.
//
// Markdown is treated as lines of text throughout. The only structure this
// package inspects is fenced (```/~~~) and indented (4-space or tab)
// code-block boundaries, so that transformations are suppressed inside them.
package transform

import "strings"

// linesKeepEnds splits text into lines preserving the trailing newline of
// each line, like bufio scanning but without dropping the terminators.
func linesKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// TransformLines applies fn line by line, skipping lines inside fenced code
// blocks. A fence opened with three backticks only closes on a backtick
// fence, and likewise for tildes. Indented code blocks are not protected
// here: the only caller is the heading-offset rewriter, which ignores lines
// that do not start with '#' at column zero anyway.
func TransformLines(markdown string, fn func(string) string) string {
	var fence string
	var out strings.Builder
	out.Grow(len(markdown))

	for _, line := range linesKeepEnds(markdown) {
		if fence == "" {
			stripped := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(stripped, "```") || strings.HasPrefix(stripped, "~~~") {
				fence = stripped[:3]
			} else {
				line = fn(line)
			}
		} else if strings.HasPrefix(strings.TrimLeft(line, " \t"), fence) {
			fence = ""
		}
		out.WriteString(line)
	}
	return out.String()
}

// TransformParagraphs applies fn paragraph by paragraph, where a paragraph is
// a maximal run of lines outside fenced and indented code blocks. Indented
// blocks must be delimited by blank-line boundaries to be honored, matching
// the CommonMark rule; an indented line with no blank neighbor is treated as
// ordinary text and handed to fn.
func TransformParagraphs(markdown string, fn func(string) string) string {
	var (
		fence         string
		maybeIndented []string
		prevBlank     bool
		out           strings.Builder
		paragraph     strings.Builder
	)
	out.Grow(len(markdown))

	flush := func() {
		out.WriteString(fn(paragraph.String()))
		paragraph.Reset()
	}

	for _, line := range linesKeepEnds(markdown) {
		if fence != "" {
			out.WriteString(line)
			if strings.HasPrefix(strings.TrimLeft(line, " \t"), fence) {
				fence = ""
			}
			prevBlank = isBlank(line)
			continue
		}

		stripped := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(stripped, "```") || strings.HasPrefix(stripped, "~~~"):
			fence = stripped[:3]
			flush()
			out.WriteString(line)
		case strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t"):
			if isBlank(line) || len(maybeIndented) > 0 {
				// maybe enter indented codeblock
				maybeIndented = append(maybeIndented, line)
			} else {
				paragraph.WriteString(line)
			}
		case len(maybeIndented) > 0:
			flush()
			if !prevBlank {
				// wasn't an indented code block
				for _, l := range maybeIndented {
					paragraph.WriteString(l)
				}
				maybeIndented = nil
				paragraph.WriteString(line)
				flush()
			} else {
				// exit indented codeblock
				for _, l := range maybeIndented {
					out.WriteString(l)
				}
				maybeIndented = nil
				out.WriteString(line)
			}
		default:
			paragraph.WriteString(line)
		}
		prevBlank = isBlank(line)
	}

	if len(maybeIndented) > 0 {
		flush()
		if !prevBlank {
			// at EOF without a closing blank line: not a code block
			for _, l := range maybeIndented {
				paragraph.WriteString(l)
			}
			flush()
		} else {
			for _, l := range maybeIndented {
				out.WriteString(l)
			}
		}
	} else {
		flush()
	}

	return out.String()
}
