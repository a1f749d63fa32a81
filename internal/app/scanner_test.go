package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirmeta/internal/domain"
	appErrors "dirmeta/internal/errors"
	"dirmeta/internal/logging"
)

type mockFS struct {
	entries  []mockDirEntry
	readErr  error
	meta     map[string]domain.FileMetadata
	metaErr  map[string]error
	writeErr error
	written  map[string][]byte
}

func (m *mockFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]fs.DirEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (m *mockFS) Metadata(path string) (domain.FileMetadata, error) {
	if err := m.metaErr[path]; err != nil {
		return domain.FileMetadata{}, err
	}
	return m.meta[path], nil
}

func (m *mockFS) WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.written == nil {
		m.written = map[string][]byte{}
	}
	m.written[path] = data
	return nil
}

type mockDirEntry struct {
	name string
	mode fs.FileMode
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.mode.IsDir() }
func (m mockDirEntry) Type() fs.FileMode          { return m.mode.Type() }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

type mockTypes struct{}

func (mockTypes) Classify(path string) domain.FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return domain.FileType{MIME: "image/jpeg"}
	case ".png":
		return domain.FileType{MIME: "image/png"}
	case ".txt":
		return domain.FileType{MIME: "text/plain"}
	default:
		return domain.FileType{MIME: domain.OctetStream}
	}
}

type mockExif struct {
	tags  map[string]domain.ExifTags
	calls []string
}

func (m *mockExif) Tags(ctx context.Context, path string) (domain.ExifTags, bool) {
	m.calls = append(m.calls, path)
	tags, ok := m.tags[path]
	return tags, ok
}

func regular(name string) mockDirEntry { return mockDirEntry{name: name} }

func TestScannerRecordsOnlyRegularFiles(t *testing.T) {
	dir := "/data"
	mock := &mockFS{
		entries: []mockDirEntry{
			regular("a.txt"),
			{name: "sub", mode: fs.ModeDir},
			{name: "link", mode: fs.ModeSymlink},
			{name: "fifo", mode: fs.ModeNamedPipe},
			{name: "dev", mode: fs.ModeDevice},
			regular("b.bin"),
		},
		meta: map[string]domain.FileMetadata{
			filepath.Join(dir, "a.txt"): {Size: 3},
			filepath.Join(dir, "b.bin"): {Size: 9},
		},
	}
	scanner := Scanner{FS: mock, Types: mockTypes{}, Exif: &mockExif{}}

	records, err := scanner.Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a.txt", records[0].FileName)
	assert.Equal(t, uint64(3), records[0].FileSize)
	assert.Equal(t, filepath.Join(dir, "b.bin"), records[1].Path)
	assert.Equal(t, domain.OctetStream, records[1].MimeType)
}

func TestScannerEmptyDirectory(t *testing.T) {
	scanner := Scanner{FS: &mockFS{}, Types: mockTypes{}, Exif: &mockExif{}}

	records, err := scanner.Scan(context.Background(), "/empty")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestScannerInvokesExifOnlyForImages(t *testing.T) {
	dir := "/photos"
	photo := filepath.Join(dir, "photo.jpg")
	plain := filepath.Join(dir, "plain.png")
	broken := filepath.Join(dir, "broken.jpg")
	notes := filepath.Join(dir, "notes.txt")

	exif := &mockExif{tags: map[string]domain.ExifTags{
		photo: {"Make": "Canon"},
		plain: {},
	}}
	mock := &mockFS{entries: []mockDirEntry{
		regular("broken.jpg"), regular("notes.txt"), regular("photo.jpg"), regular("plain.png"),
	}}
	scanner := Scanner{FS: mock, Types: mockTypes{}, Exif: exif}

	records, err := scanner.Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 4)

	byName := map[string]domain.FileRecord{}
	for _, record := range records {
		byName[record.FileName] = record
	}

	assert.Nil(t, byName["broken.jpg"].ExifData)
	assert.Nil(t, byName["notes.txt"].ExifData)
	assert.Equal(t, "text/plain", byName["notes.txt"].MimeType)

	require.NotNil(t, byName["photo.jpg"].ExifData)
	assert.Equal(t, domain.ExifTags{"Make": "Canon"}, *byName["photo.jpg"].ExifData)

	require.NotNil(t, byName["plain.png"].ExifData)
	assert.Empty(t, *byName["plain.png"].ExifData)

	assert.ElementsMatch(t, []string{broken, photo, plain}, exif.calls)
	assert.NotContains(t, exif.calls, notes)
}

func TestScannerReadDirFailureIsFatal(t *testing.T) {
	scanner := Scanner{FS: &mockFS{readErr: fs.ErrPermission}, Types: mockTypes{}, Exif: &mockExif{}}

	records, err := scanner.Scan(context.Background(), "/locked")
	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	kind, ok := appErrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.NotFound, kind)
}

func TestScannerMetadataFailureAbortsScan(t *testing.T) {
	dir := "/data"
	mock := &mockFS{
		entries: []mockDirEntry{regular("a.txt"), regular("gone.txt"), regular("z.txt")},
		metaErr: map[string]error{filepath.Join(dir, "gone.txt"): fs.ErrNotExist},
	}
	var progress []string
	scanner := Scanner{
		FS:         mock,
		Types:      mockTypes{},
		Exif:       &mockExif{},
		OnProgress: func(current, total int, name string) { progress = append(progress, name) },
	}

	records, err := scanner.Scan(context.Background(), dir)
	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	kind, _ := appErrors.KindOf(err)
	assert.Equal(t, appErrors.MetadataFailure, kind)
	assert.Equal(t, []string{"a.txt"}, progress)
}

func TestScannerStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scanner := Scanner{FS: &mockFS{entries: []mockDirEntry{regular("a.txt")}}, Types: mockTypes{}, Exif: &mockExif{}}

	_, err := scanner.Scan(ctx, "/data")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScannerRequiresPorts(t *testing.T) {
	_, err := (&Scanner{}).Scan(context.Background(), "/data")
	assert.Error(t, err)
}

func TestScannerReportsProgress(t *testing.T) {
	mock := &mockFS{entries: []mockDirEntry{regular("a.txt"), {name: "d", mode: fs.ModeDir}, regular("b.txt")}}
	type call struct {
		current, total int
		name           string
	}
	var calls []call
	scanner := Scanner{
		FS:    mock,
		Types: mockTypes{},
		Exif:  &mockExif{},
		OnProgress: func(current, total int, name string) {
			calls = append(calls, call{current, total, name})
		},
	}

	_, err := scanner.Scan(context.Background(), "/data")
	require.NoError(t, err)
	assert.Equal(t, []call{{1, 2, "a.txt"}, {2, 2, "b.txt"}}, calls)
}

func TestScanThenWriteRoundTrip(t *testing.T) {
	dir := "/data"
	mock := &mockFS{entries: []mockDirEntry{regular("a.txt"), regular("b.jpg"), {name: "sub", mode: fs.ModeDir}}}
	exif := &mockExif{tags: map[string]domain.ExifTags{filepath.Join(dir, "b.jpg"): {"Make": "Canon"}}}
	scanner := Scanner{FS: mock, Types: mockTypes{}, Exif: exif}
	writer := Writer{FS: mock}

	records, err := scanner.Scan(context.Background(), dir)
	require.NoError(t, err)
	path, err := writer.Write(context.Background(), dir, records)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(mock.written[path], &decoded))
	require.Len(t, decoded, 2)
	for _, record := range decoded {
		mimeType, _ := record["mime_type"].(string)
		_, hasExif := record["exif_data"]
		assert.Equal(t, strings.HasPrefix(mimeType, "image/"), hasExif, record["file_name"])
	}
}

func TestScannerLogsEntriesWhenVerbose(t *testing.T) {
	dir := "/photos"
	var buf bytes.Buffer
	mock := &mockFS{entries: []mockDirEntry{regular("a.jpg"), regular("b.jpg"), {name: "sub", mode: fs.ModeDir}}}
	exif := &mockExif{tags: map[string]domain.ExifTags{filepath.Join(dir, "a.jpg"): {"Make": "Canon"}}}
	scanner := Scanner{FS: mock, Types: mockTypes{}, Exif: exif, Logger: logging.New(&buf, true)}

	_, err := scanner.Scan(context.Background(), dir)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "skipped, not a regular file")
	assert.Contains(t, output, "read 1 EXIF tags")
	assert.Contains(t, output, "no EXIF data")
}
