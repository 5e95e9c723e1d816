// Package preview holds the slide-over panel used to page through CV files.
package preview

import (
	"path/filepath"
	"strings"
)

type Mode string

const (
	ModePDF            Mode = "pdf"
	ModeOfficeDocument Mode = "office_document"
	ModeUnsupported    Mode = "unsupported"
)

// Classify picks the preview mode from the file extension, ignoring case.
func Classify(filename string) Mode {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ModePDF
	case ".doc", ".docx", ".rtf":
		return ModeOfficeDocument
	default:
		return ModeUnsupported
	}
}
