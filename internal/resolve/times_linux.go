//go:build linux

package resolve

import "syscall"

func statCtime(st *syscall.Stat_t) int64 {
	return st.Ctim.Sec*1e9 + st.Ctim.Nsec
}

func statAtime(st *syscall.Stat_t) int64 {
	return st.Atim.Sec*1e9 + st.Atim.Nsec
}
