package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func identity(s string) string { return s }

func TestTransformLines_IdentityIsInvariant(t *testing.T) {
	for _, text := range []string{
		"",
		"plain text\n",
		"# Heading\n\nbody\n",
		"a\n```\ncode\n```\nb\n",
		"no trailing newline",
	} {
		require.Equal(t, text, TransformLines(text, identity))
	}
}

func TestTransformLines_SkipsFencedBlocks(t *testing.T) {
	input := "# a\n```\n# code\n```\n# b\n"
	out := TransformLines(input, func(line string) string {
		return strings.ToUpper(line)
	})
	require.Equal(t, "# A\n```\n# code\n```\n# B\n", out)
}

func TestTransformLines_FenceTypeMustMatchToClose(t *testing.T) {
	// A tilde fence inside a backtick fence does not close it.
	input := "```\n~~~\n# still code\n```\n# after\n"
	out := TransformLines(input, strings.ToUpper)
	require.Equal(t, "```\n~~~\n# still code\n```\n# AFTER\n", out)
}

func TestTransformLines_TildeFence(t *testing.T) {
	input := "# a\n~~~\n# code\n~~~\n"
	out := TransformLines(input, strings.ToUpper)
	require.Equal(t, "# A\n~~~\n# code\n~~~\n", out)
}

func TestTransformParagraphs_IdentityIsInvariant(t *testing.T) {
	for _, text := range []string{
		"",
		"plain\n",
		"a\n\n    \n    code()\n    \nb\n",
		"x\n```\nfence\n```\ny\n",
		"tail without newline",
	} {
		require.Equal(t, text, TransformParagraphs(text, identity))
	}
}

func TestTransformParagraphs_SkipsFencedBlocks(t *testing.T) {
	input := "before\n```\ninside\n```\nafter\n"
	out := TransformParagraphs(input, strings.ToUpper)
	require.Equal(t, "BEFORE\n```\ninside\n```\nAFTER\n", out)
}

func TestTransformParagraphs_SkipsIndentedBlockWithBlankBoundaries(t *testing.T) {
	// The indented run opens with an indented blank line and is closed by a
	// blank line, so it counts as an indented code block.
	input := "para\n    \n    code()\n    \nend\n"
	out := TransformParagraphs(input, strings.ToUpper)
	require.Contains(t, out, "    code()\n")
	require.Contains(t, out, "PARA\n")
}

func TestTransformParagraphs_IndentedRunWithoutClosingBlankIsText(t *testing.T) {
	// No blank line before the terminating line: the indented run is ordinary
	// paragraph text and gets transformed.
	input := "para\n    \n    notcode\nend\n"
	out := TransformParagraphs(input, strings.ToUpper)
	require.Contains(t, out, "    NOTCODE\n")
}

func TestTransformParagraphs_IndentedTailAtEOFWithoutBlankIsText(t *testing.T) {
	input := "para\n    \n    tail"
	out := TransformParagraphs(input, strings.ToUpper)
	require.Contains(t, out, "    TAIL")
}
