package models

import (
	"path/filepath"
	"strings"
)

// Format identifies how a document's bytes should be parsed.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatPPTX    Format = "pptx"
	FormatTXT     Format = "txt"
	FormatImage   Format = "image"
	FormatUnknown Format = ""
)

// Document is an uploaded lecture file awaiting extraction. It is
// immutable once received and discarded after extraction.
type Document struct {
	ID       string
	Filename string
	Format   Format
	Language string
	Data     []byte
}

// FormatFromFilename derives the document format from a filename suffix.
// The suffix is trusted as-is; callers reject FormatUnknown.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".pptx":
		return FormatPPTX
	case ".txt":
		return FormatTXT
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp", ".webp":
		return FormatImage
	default:
		return FormatUnknown
	}
}
