package mime

import (
	stdmime "mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"dirmeta/internal/domain"
)

// Classifier infers a file's MIME type from its extension. With Sniff set,
// files whose extension is unknown are identified by their content instead.
type Classifier struct {
	Sniff bool
}

func (c Classifier) Classify(path string) domain.FileType {
	if mt := ByExtension(path); mt != "" {
		return domain.FileType{MIME: mt}
	}
	if c.Sniff {
		if mt, err := mimetype.DetectFile(path); err == nil {
			return domain.FileType{MIME: stripParams(mt.String())}
		}
	}
	return domain.FileType{MIME: domain.OctetStream}
}

// extraTypes fills gaps in Go's builtin table so results do not depend on
// the host's mime.types files.
var extraTypes = map[string]string{
	".txt":  "text/plain",
	".log":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".toml": "application/toml",
	".bmp":  "image/bmp",
	".ico":  "image/x-icon",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".cr2":  "image/x-canon-cr2",
	".nef":  "image/x-nikon-nef",
	".arw":  "image/x-sony-arw",
	".dng":  "image/x-adobe-dng",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".tar":  "application/x-tar",
	".7z":   "application/x-7z-compressed",
	".rs":   "text/x-rust",
	".go":   "text/x-go",
	".sh":   "application/x-sh",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var registerOnce sync.Once

func registerExtraTypes() {
	for ext, mt := range extraTypes {
		// Only fails for extensions without a leading dot.
		_ = stdmime.AddExtensionType(ext, mt)
	}
}

// ByExtension looks up the extension of path in the MIME table. It returns
// "" for unknown or missing extensions.
func ByExtension(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	if ext == "" || ext == "." {
		return ""
	}
	registerOnce.Do(registerExtraTypes)
	if mt := stdmime.TypeByExtension(ext); mt != "" {
		return stripParams(mt)
	}
	return ""
}

func stripParams(mt string) string {
	base, _, _ := strings.Cut(mt, ";")
	return strings.TrimSpace(base)
}
