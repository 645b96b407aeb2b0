package resolve

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdinclude/internal/directive"
)

func sortStrings(paths []string) {
	sort.Strings(paths)
}

// SortPaths orders paths per the parsed order option and returns the slice.
// The input arrives lexicographically sorted by full path, which is also the
// default order; attribute sorts are stable on top of that baseline so that
// equal attributes keep the path order.
func SortPaths(paths []string, order directive.Order) []string {
	switch order.Type {
	case directive.OrderSystem:
		// whatever the filesystem yielded, direction still applies
	case directive.OrderRandom:
		rand.Shuffle(len(paths), func(i, j int) {
			paths[i], paths[j] = paths[j], paths[i]
		})
		return paths
	case directive.OrderSize:
		sort.SliceStable(paths, func(i, j int) bool {
			return fileSize(paths[i]) > fileSize(paths[j])
		})
	case directive.OrderMtime:
		sortByTime(paths, mtime)
	case directive.OrderCtime:
		sortByTime(paths, ctime)
	case directive.OrderAtime:
		sortByTime(paths, atime)
	default:
		key := sortKey(order.By)
		less := alphaLess
		if order.Type == directive.OrderNatural {
			less = naturalLess
		}
		sort.SliceStable(paths, func(i, j int) bool {
			return less(key(paths[i]), key(paths[j]))
		})
	}

	if order.Reverse {
		reverse(paths)
	}
	return paths
}

func reverse(paths []string) {
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}
}

func sortKey(by string) func(string) string {
	switch by {
	case directive.OrderByName:
		return filepath.Base
	case directive.OrderByExtension:
		return func(p string) string { return filepath.Ext(p) }
	default:
		return func(p string) string { return p }
	}
}

func alphaLess(a, b string) bool {
	return a < b
}

// naturalLess compares strings treating digit runs as numbers, so file2.md
// sorts before file10.md. Leading zeros break ties in favor of the shorter
// numeric token; a final full-string comparison keeps the order total.
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	if len(a)-i != len(b)-j {
		return len(a)-i < len(b)-j
	}
	return a < b
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func fileSize(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return st.Size()
}

func mtime(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return st.ModTime().UnixNano()
}

func sortByTime(paths []string, t func(string) int64) {
	sort.SliceStable(paths, func(i, j int) bool {
		return t(paths[i]) < t(paths[j])
	})
}
