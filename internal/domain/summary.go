package domain

type Summary struct {
	Files          int
	Images         int
	ImagesWithExif int
	TotalBytes     uint64
}

func Summarize(records []FileRecord) Summary {
	var s Summary
	for _, record := range records {
		s.Files++
		s.TotalBytes += record.FileSize
		if !(FileType{MIME: record.MimeType}).IsImage() {
			continue
		}
		s.Images++
		if record.ExifData != nil && len(*record.ExifData) > 0 {
			s.ImagesWithExif++
		}
	}
	return s
}
