package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	"dirmeta/internal/domain"
)

type OSFS struct{}

func (OSFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

// Metadata stats path, following symlinks. Only the stat call itself can
// fail; timestamps the platform cannot report are left nil.
func (OSFS) Metadata(path string) (domain.FileMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileMetadata{}, err
	}

	created, accessed := fileTimes(path, info)

	var size uint64
	if info.Size() > 0 {
		size = uint64(info.Size())
	}

	return domain.FileMetadata{
		Size:     size,
		Created:  created,
		Modified: domain.UnixSeconds(info.ModTime()),
		Accessed: accessed,
	}, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial document.
func (OSFS) WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
