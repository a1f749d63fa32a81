//go:build linux

package fs

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"dirmeta/internal/domain"
)

func fileTimes(path string, info fs.FileInfo) (created, accessed *uint64) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME|unix.STATX_ATIME, &stx)
	if err != nil {
		// statx is unavailable on old kernels and some filesystems.
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			accessed = domain.UnixSeconds(time.Unix(st.Atim.Unix()))
		}
		return nil, accessed
	}

	if stx.Mask&unix.STATX_BTIME != 0 {
		created = domain.UnixSeconds(time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)))
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		accessed = domain.UnixSeconds(time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec)))
	}
	return created, accessed
}
