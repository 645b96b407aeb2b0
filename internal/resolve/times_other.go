//go:build !linux && !darwin

package resolve

import "os"

// Platforms without a portable stat time layout sort ctime and atime by the
// modification time instead.

func ctime(path string) int64 {
	return mtimeFallback(path)
}

func atime(path string) int64 {
	return mtimeFallback(path)
}

func mtimeFallback(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return st.ModTime().UnixNano()
}
