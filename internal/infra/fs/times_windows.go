//go:build windows

package fs

import (
	"io/fs"
	"syscall"
	"time"

	"dirmeta/internal/domain"
)

func fileTimes(_ string, info fs.FileInfo) (created, accessed *uint64) {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return nil, nil
	}
	created = domain.UnixSeconds(time.Unix(0, attrs.CreationTime.Nanoseconds()))
	accessed = domain.UnixSeconds(time.Unix(0, attrs.LastAccessTime.Nanoseconds()))
	return created, accessed
}
