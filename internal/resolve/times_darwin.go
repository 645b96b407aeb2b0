//go:build darwin

package resolve

import "syscall"

func statCtime(st *syscall.Stat_t) int64 {
	return st.Ctimespec.Sec*1e9 + st.Ctimespec.Nsec
}

func statAtime(st *syscall.Stat_t) int64 {
	return st.Atimespec.Sec*1e9 + st.Atimespec.Nsec
}
