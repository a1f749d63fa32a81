package presentation

import (
	"fmt"
	"io"
	"path/filepath"

	"dirmeta/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintWritten prints the confirmation for a written document, followed by
// a summary of the records in verbose mode.
func (p Printer) PrintWritten(path string, records []domain.FileRecord) {
	fmt.Fprintf(p.Writer, "File data has been written to %s\n", filepath.Base(path))
	if !p.Verbose {
		return
	}

	s := domain.Summarize(records)
	fmt.Fprintln(p.Writer)
	fmt.Fprintf(p.Writer, "Files:            %d (%s)\n", s.Files, FormatBytes(s.TotalBytes))
	fmt.Fprintf(p.Writer, "Images:           %d\n", s.Images)
	fmt.Fprintf(p.Writer, "Images with EXIF: %d\n", s.ImagesWithExif)
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
