// Package directive implements the grammar of the include directives: the
// tag patterns built from configurable opening/closing delimiters and
// directive names, the quoted-filename rules, and the typed argument
// sub-grammar (string, boolean, integer) with strict value validation.
package directive

import (
	"regexp"
	"strings"
)

// Directive kinds.
const (
	KindInclude         = "include"
	KindIncludeMarkdown = "include-markdown"
)

// Default tag delimiters.
const (
	DefaultOpeningTag = "{%"
	DefaultClosingTag = "%}"
)

// Quoted string bodies. The only escape the filename grammar recognizes is
// the enclosing quote character; other backslashes pass through untouched.
const (
	doubleQuotedBody = `(?:[^"\\]|\\.)+`
	singleQuotedBody = `(?:[^'\\]|\\.)+`
)

// Patterns holds the compiled tag regexes for one configuration.
type Patterns struct {
	Include         *regexp.Regexp
	IncludeMarkdown *regexp.Regexp
}

// Group indices in a tag pattern match.
const (
	GroupIndent = iota + 1
	GroupDoubleQuoted
	GroupSingleQuoted
	GroupArguments
)

// CompileTag builds the regex matching one directive tag. The leading-indent
// group captures the run of whitespace/word/punctuation characters before
// the opening delimiter on the same line; the filename is captured in
// exactly one of the two quote groups; the arguments tail is captured raw,
// non-greedily across newlines.
func CompileTag(openingTag, closingTag, name string) *regexp.Regexp {
	if openingTag == "" {
		openingTag = DefaultOpeningTag
	}
	if closingTag == "" {
		closingTag = DefaultClosingTag
	}
	pattern := `(?s)([ \t\w\\.]*?)` +
		regexp.QuoteMeta(openingTag) +
		`\s*` + regexp.QuoteMeta(name) + `\s+` +
		`(?:"(` + doubleQuotedBody + `)")?` +
		`(?:'(` + singleQuotedBody + `)')?` +
		`(.*?)\s*` +
		regexp.QuoteMeta(closingTag)
	return regexp.MustCompile(pattern)
}

// Compile builds the two directive patterns for the given tag configuration.
// Empty names fall back to the default directive names.
func Compile(openingTag, closingTag, includeName, includeMarkdownName string) Patterns {
	if includeName == "" {
		includeName = KindInclude
	}
	if includeMarkdownName == "" {
		includeMarkdownName = KindIncludeMarkdown
	}
	return Patterns{
		Include:         CompileTag(openingTag, closingTag, includeName),
		IncludeMarkdown: CompileTag(openingTag, closingTag, includeMarkdownName),
	}
}

// Match is one directive occurrence in a page, produced from a tag pattern
// match against the raw page text.
type Match struct {
	Kind        string
	Start       int    // byte offset of the match, for line-number reporting
	Indent      string // leading-indent prefix captured before the tag
	RawFilename string // as written, escapes intact; empty when missing
	Filename    string // unescaped; empty when missing
	Arguments   string // raw unparsed argument string
}

// NewMatch builds a Match from the submatch index vector of a tag pattern.
func NewMatch(kind, page string, loc []int) Match {
	m := Match{Kind: kind, Start: loc[0]}
	m.Indent = group(page, loc, GroupIndent)
	if raw := group(page, loc, GroupDoubleQuoted); raw != "" {
		m.RawFilename = raw
		m.Filename = strings.ReplaceAll(raw, `\"`, `"`)
	} else if raw := group(page, loc, GroupSingleQuoted); raw != "" {
		m.RawFilename = raw
		m.Filename = strings.ReplaceAll(raw, `\'`, `'`)
	}
	m.Arguments = group(page, loc, GroupArguments)
	return m
}

func group(s string, loc []int, n int) string {
	if 2*n >= len(loc) || loc[2*n] < 0 {
		return ""
	}
	return s[loc[2*n]:loc[2*n+1]]
}
