//go:build linux || darwin

package resolve

import (
	"os"
	"syscall"
)

// ctime and atime read inode change and access times from the underlying
// stat structure. They fall back to the modification time when the platform
// data is unavailable.

func ctime(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if sys, ok := st.Sys().(*syscall.Stat_t); ok {
		return statCtime(sys)
	}
	return st.ModTime().UnixNano()
}

func atime(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if sys, ok := st.Sys().(*syscall.Stat_t); ok {
		return statAtime(sys)
	}
	return st.ModTime().UnixNano()
}
