package directive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func firstMatch(t *testing.T, kind, page string) Match {
	t.Helper()
	patterns := Compile("", "", "", "")
	re := patterns.Include
	if kind == KindIncludeMarkdown {
		re = patterns.IncludeMarkdown
	}
	loc := re.FindStringSubmatchIndex(page)
	require.NotNil(t, loc, "no directive match in %q", page)
	return NewMatch(kind, page, loc)
}

func TestCompile_DefaultTags(t *testing.T) {
	m := firstMatch(t, KindInclude, `{% include "file.md" %}`)
	require.Equal(t, "file.md", m.Filename)
	require.Equal(t, "file.md", m.RawFilename)
	require.Empty(t, m.Arguments)
	require.Empty(t, m.Indent)
}

func TestCompile_CapturesIndent(t *testing.T) {
	m := firstMatch(t, KindInclude, "    {% include \"f.md\" %}")
	require.Equal(t, "    ", m.Indent)
}

func TestCompile_SingleQuotedFilenameWithEscape(t *testing.T) {
	m := firstMatch(t, KindInclude, `{% include 'it\'s.md' %}`)
	require.Equal(t, "it's.md", m.Filename)
	require.Equal(t, `it\'s.md`, m.RawFilename)
}

func TestCompile_DoubleQuotedFilenameWithEscape(t *testing.T) {
	m := firstMatch(t, KindInclude, `{% include "a \"b\".md" %}`)
	require.Equal(t, `a "b".md`, m.Filename)
}

func TestCompile_MissingFilename(t *testing.T) {
	m := firstMatch(t, KindInclude, `{% include %}`)
	require.Empty(t, m.Filename)
}

func TestCompile_ArgumentsTail(t *testing.T) {
	m := firstMatch(t, KindIncludeMarkdown,
		`{% include-markdown "f.md" start="<!--s-->" comments=true %}`)
	require.Equal(t, "f.md", m.Filename)
	require.Contains(t, m.Arguments, `start="<!--s-->"`)
	require.Contains(t, m.Arguments, "comments=true")
}

func TestCompile_MultilineArguments(t *testing.T) {
	page := "{% include \"f.md\"\n   start=\"a\"\n   end=\"b\"\n%}"
	m := firstMatch(t, KindInclude, page)
	require.Equal(t, "f.md", m.Filename)
	require.Contains(t, m.Arguments, `start="a"`)
	require.Contains(t, m.Arguments, `end="b"`)
}

func TestCompile_CustomTagsAndNames(t *testing.T) {
	patterns := Compile("{!", "!}", "insert", "insert-markdown")
	loc := patterns.Include.FindStringSubmatchIndex(`{! insert "f.md" !}`)
	require.NotNil(t, loc)

	require.Nil(t, patterns.Include.FindStringSubmatchIndex(`{% include "f.md" %}`),
		"default syntax must not match under custom tags")
}

func TestCompile_IncludeMarkdownDoesNotMatchInclude(t *testing.T) {
	patterns := Compile("", "", "", "")
	page := `{% include "f.md" %}`
	require.Nil(t, patterns.IncludeMarkdown.FindStringSubmatchIndex(page))
}

func TestMatch_StartOffset(t *testing.T) {
	page := "line one\n{% include \"f.md\" %}"
	m := firstMatch(t, KindInclude, page)
	require.Equal(t, 9, m.Start)
}
