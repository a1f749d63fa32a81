package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// OctetStream is the MIME type used when a file's type cannot be determined.
const OctetStream = "application/octet-stream"

// ExifTags maps EXIF tag names to their rendered values.
type ExifTags map[string]string

// FileMetadata holds the filesystem attributes of a single file. Each
// timestamp is Unix seconds, or nil when the platform cannot report it.
type FileMetadata struct {
	Size     uint64
	Created  *uint64
	Modified *uint64
	Accessed *uint64
}

// FileType is the classification result for a file name.
type FileType struct {
	MIME string
}

func (t FileType) String() string {
	if t.MIME == "" {
		return OctetStream
	}
	return t.MIME
}

// TopLevel returns the part of the MIME type before the slash.
func (t FileType) TopLevel() string {
	top, _, _ := strings.Cut(t.String(), "/")
	return strings.ToLower(strings.TrimSpace(top))
}

func (t FileType) IsImage() bool {
	return t.TopLevel() == "image"
}

type FileRecord struct {
	FileName      string    `json:"file_name"`
	FileSize      uint64    `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	FileExtension string    `json:"file_extension"`
	Path          string    `json:"path"`
	CreatedTime   *uint64   `json:"created_time,omitempty"`
	ModifiedTime  *uint64   `json:"modified_time,omitempty"`
	AccessedTime  *uint64   `json:"accessed_time,omitempty"`
	ExifData      *ExifTags `json:"exif_data,omitempty"`
}

// NewFileRecord assembles a record from the per-file lookups. EXIF data is
// discarded unless the type is an image.
func NewFileRecord(path string, meta FileMetadata, fileType FileType, exif *ExifTags) FileRecord {
	name := filepath.Base(path)
	if !fileType.IsImage() {
		exif = nil
	}

	return FileRecord{
		FileName:      name,
		FileSize:      meta.Size,
		MimeType:      fileType.String(),
		FileExtension: Extension(name),
		Path:          path,
		CreatedTime:   meta.Created,
		ModifiedTime:  meta.Modified,
		AccessedTime:  meta.Accessed,
		ExifData:      exif,
	}
}

// Extension returns the text after the last dot of name. A name whose only
// dot is the leading one (".bashrc") has no extension.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// UnixSeconds converts t to Unix seconds. Zero and pre-epoch times yield nil.
func UnixSeconds(t time.Time) *uint64 {
	if t.IsZero() || t.Unix() < 0 {
		return nil
	}
	secs := uint64(t.Unix())
	return &secs
}
