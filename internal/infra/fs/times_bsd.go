//go:build darwin || freebsd

package fs

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"

	"dirmeta/internal/domain"
)

func fileTimes(path string, _ fs.FileInfo) (created, accessed *uint64) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, nil
	}
	created = domain.UnixSeconds(time.Unix(st.Btim.Unix()))
	accessed = domain.UnixSeconds(time.Unix(st.Atim.Unix()))
	return created, accessed
}
