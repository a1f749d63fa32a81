package app

import (
	"context"
	"errors"
	"path/filepath"

	"dirmeta/internal/domain"
	appErrors "dirmeta/internal/errors"
	"dirmeta/internal/logging"
)

// ProgressFunc is called after each regular file has been recorded.
type ProgressFunc func(current, total int, name string)

// Scanner builds one FileRecord per regular file in a directory. Files are
// processed one at a time in directory order.
type Scanner struct {
	FS         FileSystem
	Types      TypeClassifier
	Exif       ExifReader
	Logger     logging.Logger
	OnProgress ProgressFunc
}

func (s *Scanner) Scan(ctx context.Context, dir string) ([]domain.FileRecord, error) {
	if s.FS == nil || s.Types == nil || s.Exif == nil {
		return nil, errors.New("scanner requires FS, Types and Exif")
	}

	stop := s.Logger.Measure("Scanning " + dir)
	defer stop()

	entries, err := s.FS.ReadDir(dir)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.NotFound, "readdir", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			s.Logger.Entryf(entry.Name(), "skipped, not a regular file (%s)", entry.Type())
			continue
		}
		files = append(files, entry.Name())
	}
	s.Logger.Verbosef("Found %d regular files among %d entries", len(files), len(entries))

	records := make([]domain.FileRecord, 0, len(files))
	for i, name := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := s.scanFile(ctx, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, record)

		if s.OnProgress != nil {
			s.OnProgress(i+1, len(files), name)
		}
	}

	return records, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string) (domain.FileRecord, error) {
	meta, err := s.FS.Metadata(path)
	if err != nil {
		return domain.FileRecord{}, appErrors.Wrap(appErrors.MetadataFailure, "stat", path, err)
	}

	fileType := s.Types.Classify(path)

	var exif *domain.ExifTags
	if fileType.IsImage() {
		if tags, ok := s.Exif.Tags(ctx, path); ok {
			exif = &tags
			s.Logger.Entryf(filepath.Base(path), "read %d EXIF tags", len(tags))
		} else {
			s.Logger.Entryf(filepath.Base(path), "no EXIF data")
		}
	}

	return domain.NewFileRecord(path, meta, fileType, exif), nil
}
