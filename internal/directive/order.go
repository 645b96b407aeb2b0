package directive

import "regexp"

// Order option grammar: an optional '-' for descending direction, then
// either a sort type ('alpha' or 'natural', optionally combined with a sort
// key 'path', 'name' or 'extension'), or one of the attribute sorts.
var orderOptionRE = regexp.MustCompile(
	`^-?(?:(?:alpha|natural)?(?:-?(?:path|name|extension))?|system|random|size|mtime|ctime|atime)?$`,
)

// Sort types.
const (
	OrderAlpha   = "alpha"
	OrderNatural = "natural"
	OrderSystem  = "system"
	OrderRandom  = "random"
	OrderSize    = "size"
	OrderMtime   = "mtime"
	OrderCtime   = "ctime"
	OrderAtime   = "atime"
)

// Sort keys.
const (
	OrderByPath      = "path"
	OrderByName      = "name"
	OrderByExtension = "extension"
)

// Order is the parsed form of an order option.
type Order struct {
	Reverse bool
	Type    string
	By      string
}

// OrderOptionPattern exposes the grammar for error messages.
func OrderOptionPattern() string {
	return orderOptionRE.String()
}

// ValidOrderOption reports whether s matches the order grammar.
func ValidOrderOption(s string) bool {
	return orderOptionRE.MatchString(s)
}

// ParseOrderOption parses an already-validated order option. The zero option
// means ascending lexicographic by full path.
func ParseOrderOption(s string) Order {
	o := Order{Type: OrderAlpha, By: OrderByPath}
	if len(s) > 0 && s[0] == '-' {
		o.Reverse = true
		s = s[1:]
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			o.Type, o.By = s[:i], s[i+1:]
			return o
		}
	}
	switch s {
	case OrderAlpha, OrderNatural, OrderSystem, OrderRandom,
		OrderSize, OrderMtime, OrderCtime, OrderAtime:
		o.Type = s
	case OrderByPath, OrderByName, OrderByExtension:
		o.By = s
	}
	return o
}
