package model

import (
	"strings"
	"time"
)

type Status string

const (
	StatusUploaded  Status = "uploaded"
	StatusParsing   Status = "parsing"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
	StatusUnknown   Status = "unknown"
)

// IsTerminal reports whether no further transitions will follow.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// RecordKind discriminates the record shapes that can be opened in the
// preview panel.
type RecordKind string

const (
	KindUploaded  RecordKind = "uploaded"
	KindSearchHit RecordKind = "search_hit"
)

// FileRef is the part shared by every record shape: enough to title, preview
// and download the original file.
type FileRef struct {
	ID               string `json:"id"`
	OriginalFilename string `json:"original_filename"`
	StoredFilename   string `json:"stored_filename"`
	Name             string `json:"name,omitempty"`
}

type CVRecord struct {
	FileRef
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Tags       []string  `json:"tags"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// StatusReport is one observation of a parsing job.
type StatusReport struct {
	JobID  string `json:"cv_id"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// PanelItem is a record as seen by the preview panel.
type PanelItem struct {
	Kind RecordKind `json:"kind"`
	FileRef
}

func PanelItemsFromCVs(cvs []CVRecord) []PanelItem {
	items := make([]PanelItem, len(cvs))
	for i, cv := range cvs {
		items[i] = PanelItem{Kind: KindUploaded, FileRef: cv.FileRef}
	}
	return items
}

func PanelItemsFromResults(results []SearchResult) []PanelItem {
	items := make([]PanelItem, len(results))
	for i, r := range results {
		items[i] = PanelItem{Kind: KindSearchHit, FileRef: r.FileRef}
	}
	return items
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts RFC 3339 and the zone-less ISO form the backend emits
// (treated as UTC).
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
