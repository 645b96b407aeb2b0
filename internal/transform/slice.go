package transform

import (
	"strconv"
	"strings"
)

// InterpretEscapes replaces standard backslash escape sequences in value with
// their usual meanings, as in ordinary string literals. Unknown escapes are
// left verbatim, backslash included. Delimiter arguments pass through here so
// authors can write start="\t" or end="\n".
func InterpretEscapes(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' || i == len(runes)-1 {
			b.WriteRune(c)
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'x':
			if i+2 < len(runes) {
				if n, err := strconv.ParseUint(string(runes[i+1:i+3]), 16, 8); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		case 'u':
			if i+4 < len(runes) {
				if n, err := strconv.ParseUint(string(runes[i+1:i+5]), 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 4
					continue
				}
			}
			b.WriteString(`\u`)
		default:
			b.WriteByte('\\')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// FilterInclusions slices text using the optional start and end delimiters.
// Escape sequences in the delimiters are interpreted before the literal
// string search. The returned flags report, per delimiter, whether it was
// specified but never found in text.
//
// With only start, everything after its first occurrence is returned. With
// only end, everything before its first occurrence (the whole text on a
// miss). With both, every start...end span found anywhere in the text is
// concatenated, supporting repeated delimiter pairs in one file.
func FilterInclusions(start, end *string, text string) (string, bool, bool) {
	switch {
	case start != nil && end == nil:
		s := InterpretEscapes(*start)
		_, after, found := strings.Cut(text, s)
		if !found {
			return "", true, false
		}
		return after, false, false

	case start == nil && end != nil:
		e := InterpretEscapes(*end)
		before, _, found := strings.Cut(text, e)
		if !found {
			return text, false, true
		}
		return before, false, false

	case start != nil && end != nil:
		s, e := InterpretEscapes(*start), InterpretEscapes(*end)
		startNotFound := !strings.Contains(text, s)
		endNotFound := !strings.Contains(text, e)

		parts := []string{text}
		if !startNotFound {
			parts = strings.Split(text, s)[1:]
		}

		var b strings.Builder
		for _, part := range parts {
			for i, span := range strings.Split(part, e) {
				if i%2 == 0 {
					b.WriteString(span)
				}
			}
		}
		return b.String(), startNotFound, endNotFound
	}

	return text, false, false
}
