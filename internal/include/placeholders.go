package include

import (
	"strconv"
	"strings"
)

// Placeholder tokens are delimited by the STX/ETX control characters, which
// never occur in ordinary Markdown. Literal occurrences in author content
// are escaped before directive scanning and unescaped after substitution,
// so user text can never collide with a token.
const (
	stx               = "\u0002"
	etx               = "\u0003"
	placeholderPrefix = stx + "klzzwxh:"
)

type placeholderTable struct {
	entries []placeholderEntry
}

type placeholderEntry struct {
	token   string
	content string
}

// save stores content and returns the opaque token standing in for it until
// every directive of the page has been resolved.
func (t *placeholderTable) save(content string) string {
	token := placeholderPrefix + strconv.Itoa(len(t.entries)) + etx
	t.entries = append(t.entries, placeholderEntry{token: token, content: content})
	return token
}

// substitute replaces each token with its stored content. Tokens are unique,
// so a single replacement per entry suffices.
func (t *placeholderTable) substitute(text string) string {
	for _, e := range t.entries {
		text = strings.Replace(text, e.token, e.content, 1)
	}
	return text
}

func escapePlaceholders(text string) string {
	text = strings.ReplaceAll(text, stx, `\`+stx)
	return strings.ReplaceAll(text, etx, `\`+etx)
}

func unescapePlaceholders(text string) string {
	text = strings.ReplaceAll(text, `\`+stx, stx)
	return strings.ReplaceAll(text, `\`+etx, etx)
}
