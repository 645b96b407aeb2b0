// Package charset decodes included file bytes into UTF-8 text. Encodings are
// looked up by their WHATWG/IANA names, so every label a browser accepts
// (latin-1, iso-8859-1, windows-1252, shift_jis, ...) works as an encoding
// argument.
package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"git.home.luguber.info/inful/mdinclude/internal/errors"
)

// DefaultEncoding is applied when a directive carries no encoding argument.
const DefaultEncoding = "utf-8"

// Decode converts raw file bytes from the named encoding into a UTF-8
// string. UTF-8 input is validated and passed through without copying
// through a decoder.
func Decode(data []byte, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" {
		name = DefaultEncoding
	}

	if name == "utf-8" || name == "utf8" {
		if !utf8.Valid(data) {
			return "", errors.Directivef("content is not valid utf-8")
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", errors.Directivef("unknown encoding %q", encoding)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryDirective, errors.SeverityError,
			"decoding content as "+name)
	}
	return string(decoded), nil
}

// Known reports whether the encoding label resolves to a decoder.
func Known(encoding string) bool {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return true
	}
	_, err := htmlindex.Get(name)
	return err == nil
}
