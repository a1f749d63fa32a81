package app

import (
	"context"
	"io/fs"

	"dirmeta/internal/domain"
)

type FileSystem interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Metadata(path string) (domain.FileMetadata, error)
	WriteFileAtomic(path string, data []byte, perm fs.FileMode) error
}

type TypeClassifier interface {
	Classify(path string) domain.FileType
}

// ExifReader returns the EXIF tags of an image. ok is false when the file
// could not be opened as an image; it never reports an error.
type ExifReader interface {
	Tags(ctx context.Context, path string) (tags domain.ExifTags, ok bool)
}
