package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindAudio        = "audio"
	FileKindDocument     = "document"
	FileKindPDF          = "pdf"
	FileKindPresentation = "presentation"
	FileKindSpreadsheet  = "spreadsheet"
	FileKindImage        = "image"
	FileKindVideo        = "video"
	FileKindArchive      = "archive"
	FileKindOther        = "other"
)

// DetectFileKind: dari ekstensi dulu, lalu prefix content type.
func DetectFileKind(filename, contentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3", ".wav", ".m4a", ".ogg":
		return FileKindAudio
	case ".doc", ".docx", ".odt", ".txt", ".rtf":
		return FileKindDocument
	case ".pdf":
		return FileKindPDF
	case ".ppt", ".pptx", ".odp":
		return FileKindPresentation
	case ".xls", ".xlsx", ".ods", ".csv":
		return FileKindSpreadsheet
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg":
		return FileKindImage
	case ".mp4", ".mov", ".webm":
		return FileKindVideo
	case ".zip", ".rar", ".7z", ".tar", ".gz":
		return FileKindArchive
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return FileKindImage
	case strings.HasPrefix(ct, "audio/"):
		return FileKindAudio
	case strings.HasPrefix(ct, "video/"):
		return FileKindVideo
	case ct == "application/pdf":
		return FileKindPDF
	}
	return FileKindOther
}
