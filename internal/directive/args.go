package directive

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// Argument names.
const (
	ArgStart                  = "start"
	ArgEnd                    = "end"
	ArgExclude                = "exclude"
	ArgEncoding               = "encoding"
	ArgOrder                  = "order"
	ArgComments               = "comments"
	ArgPreserveIncluderIndent = "preserve-includer-indent"
	ArgDedent                 = "dedent"
	ArgTrailingNewlines       = "trailing-newlines"
	ArgRewriteRelativeURLs    = "rewrite-relative-urls"
	ArgRecursive              = "recursive"
	ArgHeadingOffset          = "heading-offset"
)

// includeArgs and includeMarkdownArgs are the recognized argument sets per
// directive kind. include has no Markdown-aware options.
var (
	includeMarkdownArgs = map[string]bool{
		ArgStart: true, ArgEnd: true, ArgExclude: true, ArgEncoding: true,
		ArgOrder: true, ArgComments: true, ArgPreserveIncluderIndent: true,
		ArgDedent: true, ArgTrailingNewlines: true,
		ArgRewriteRelativeURLs: true, ArgRecursive: true, ArgHeadingOffset: true,
	}
	includeArgs = map[string]bool{
		ArgStart: true, ArgEnd: true, ArgExclude: true, ArgEncoding: true,
		ArgOrder: true, ArgPreserveIncluderIndent: true, ArgDedent: true,
		ArgTrailingNewlines: true, ArgRecursive: true,
	}
)

// AllowedArgs returns the recognized argument set for a directive kind.
func AllowedArgs(kind string) map[string]bool {
	if kind == KindIncludeMarkdown {
		return includeMarkdownArgs
	}
	return includeArgs
}

var (
	argRegexMu    sync.Mutex
	argRegexCache = map[string]*regexp.Regexp{}
)

// valueArgRegex matches an unquoted argument value (booleans and integers).
func valueArgRegex(name string) *regexp.Regexp {
	return cachedRegex("v:"+name, func() string {
		return regexp.QuoteMeta(name) + `=([[:punct:]\w]*)`
	})
}

// stringArgRegex matches a quoted argument value, double or single.
func stringArgRegex(name string) *regexp.Regexp {
	return cachedRegex("s:"+name, func() string {
		return regexp.QuoteMeta(name) +
			`=(?:"(` + doubleQuotedBody + `)")?` +
			`(?:'(` + singleQuotedBody + `)')?`
	})
}

func cachedRegex(key string, build func() string) *regexp.Regexp {
	argRegexMu.Lock()
	defer argRegexMu.Unlock()
	if re, ok := argRegexCache[key]; ok {
		return re
	}
	re := regexp.MustCompile(build())
	argRegexCache[key] = re
	return re
}

// StringArg extracts a quoted string argument from the raw arguments tail.
// ok is false when the argument is present without a parseable quoted value.
func StringArg(name, arguments string) (value string, ok bool) {
	m := stringArgRegex(name).FindStringSubmatch(arguments)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return strings.ReplaceAll(m[1], `\"`, `"`), true
	}
	if m[2] != "" {
		return strings.ReplaceAll(m[2], `\'`, `'`), true
	}
	return "", false
}

// BoolArg resolves a boolean argument against its default. The value token
// must be exactly true or false; an empty value (bare `name=`) toggles the
// default. invalid reports an unparseable token.
func BoolArg(name, arguments string, def bool) (value bool, invalid bool) {
	m := valueArgRegex(name).FindStringSubmatch(arguments)
	if m == nil {
		return def, false
	}
	switch m[1] {
	case "":
		return !def, false
	case "true":
		return true, false
	case "false":
		return false, false
	}
	return def, true
}

// IntArg extracts an integer argument's raw token. ok is false when the
// argument key is present with no value at all.
func IntArg(name, arguments string) (raw string, ok bool) {
	m := valueArgRegex(name).FindStringSubmatch(arguments)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ScanArgumentNames walks the raw arguments tail and returns every token
// that appears immediately before a '=' outside quoted values, in order.
// The engine warns on names outside the recognized set and uses the rest.
func ScanArgumentNames(arguments string) []string {
	var (
		names    []string
		cur      []rune
		quote    rune
		inString bool
		escaping bool
		opening  bool
	)
	for _, c := range arguments {
		switch {
		case inString:
			if c == '\\' {
				escaping = !escaping
				continue
			}
			if c == quote && !escaping {
				inString = false
				quote = 0
			} else {
				escaping = false
			}
		case c == '=':
			names = append(names, tailToken(cur))
			cur = cur[:0]
			opening = true
		case opening:
			opening = false
			if c == '"' || c == '\'' {
				quote = c
				inString = true
			} else {
				cur = append(cur, c)
			}
		default:
			cur = append(cur, c)
		}
	}
	return names
}

// tailToken returns the suffix of cur after its last whitespace rune.
func tailToken(cur []rune) string {
	for i := len(cur) - 1; i >= 0; i-- {
		if unicode.IsSpace(cur[i]) {
			return string(cur[i+1:])
		}
	}
	return string(cur)
}
