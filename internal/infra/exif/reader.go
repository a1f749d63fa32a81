package exif

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"dirmeta/internal/domain"
)

// Reader extracts every EXIF tag of an image as a name to string mapping.
type Reader struct{}

// Tags returns ok=false when the file cannot be opened as an image. An
// image without a readable EXIF block yields an empty, non-nil map.
func (Reader) Tags(ctx context.Context, path string) (tags domain.ExifTags, ok bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer file.Close()

	if !isImage(file) {
		return nil, false
	}

	tags = domain.ExifTags{}
	// goexif can panic on malformed IFDs.
	defer func() {
		if recover() != nil {
			tags, ok = domain.ExifTags{}, true
		}
	}()

	x, err := goexif.Decode(file)
	if x == nil || (err != nil && goexif.IsCriticalError(err)) {
		return tags, true
	}

	// Walk only fails when the walker does; ours never does.
	_ = x.Walk(walker(tags))
	return tags, true
}

func isImage(file *os.File) bool {
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return false
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false
	}
	top, _, _ := strings.Cut(mt.String(), "/")
	return top == "image"
}

type walker domain.ExifTags

func (w walker) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	key := strings.TrimSpace(string(name))
	if key == "" || tag == nil {
		return nil
	}
	value, ok := formatTag(tag)
	if !ok {
		return nil
	}
	w[key] = value
	return nil
}

// formatTag renders a tag value: ASCII verbatim, numbers space separated,
// rationals as num/den.
func formatTag(tag *tiff.Tag) (string, bool) {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return "", false
		}
		return strings.TrimRight(s, "\x00 "), true
	case tiff.IntVal:
		parts := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return "", false
			}
			parts = append(parts, strconv.FormatInt(v, 10))
		}
		return strings.Join(parts, " "), true
	case tiff.RatVal:
		parts := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return "", false
			}
			parts = append(parts, strconv.FormatInt(num, 10)+"/"+strconv.FormatInt(den, 10))
		}
		return strings.Join(parts, " "), true
	case tiff.FloatVal:
		parts := make([]string, 0, tag.Count)
		for i := 0; i < int(tag.Count); i++ {
			v, err := tag.Float(i)
			if err != nil {
				return "", false
			}
			parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
		}
		return strings.Join(parts, " "), true
	default:
		s := tag.String()
		if strings.HasPrefix(s, "ERROR:") {
			return "", false
		}
		return strings.Trim(s, `"`), true
	}
}
