package app

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	"dirmeta/internal/domain"
	appErrors "dirmeta/internal/errors"
	"dirmeta/internal/logging"
)

const DefaultOutputName = "file_data.json"

// Writer persists scan results as an indented JSON array inside the
// scanned directory.
type Writer struct {
	FS     FileSystem
	Name   string
	Logger logging.Logger
}

// Path returns the document location for dir.
func (w *Writer) Path(dir string) string {
	name := w.Name
	if name == "" {
		name = DefaultOutputName
	}
	return filepath.Join(dir, name)
}

func (w *Writer) Write(ctx context.Context, dir string, records []domain.FileRecord) (string, error) {
	if w.FS == nil {
		return "", errors.New("writer requires FS")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if records == nil {
		records = []domain.FileRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", appErrors.Wrap(appErrors.Internal, "encode", "", err)
	}

	path := w.Path(dir)
	if err := w.FS.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "write", path, err)
	}
	w.Logger.Verbosef("Wrote %d records (%d bytes) to %s", len(records), len(data), path)

	return path, nil
}
