package dto

import (
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/preview"
)

const (
	OfficeDocumentNotice = "Preview not available for DOC/DOCX files. You can download and open it locally."
	UnsupportedNotice    = "Unsupported file type."
)

// URLBuilder maps a stored filename to a backend URL.
type URLBuilder func(storedFilename string) string

type PanelDTO struct {
	Open           bool             `json:"open"`
	State          preview.State    `json:"state"`
	Source         string           `json:"source,omitempty"`
	Kind           model.RecordKind `json:"kind,omitempty"`
	Index          int              `json:"index"`
	Total          int              `json:"total"`
	Label          string           `json:"label,omitempty"`
	Title          string           `json:"title,omitempty"`
	Mode           preview.Mode     `json:"mode,omitempty"`
	EmbedURL       string           `json:"embed_url,omitempty"`
	ThumbnailURL   string           `json:"thumbnail_url,omitempty"`
	Notice         string           `json:"notice,omitempty"`
	DownloadURL    string           `json:"download_url,omitempty"`
	DownloadTarget string           `json:"download_target,omitempty"`
	CanPrev        bool             `json:"can_prev"`
	CanNext        bool             `json:"can_next"`
}

func NewPanelDTO(p preview.Panel, source string, previewURL, downloadURL URLBuilder) PanelDTO {
	item, ok := p.Current()
	if !ok {
		return PanelDTO{State: preview.StateClosed}
	}

	mode := preview.Classify(item.StoredFilename)
	view := PanelDTO{
		Open:           true,
		State:          p.State(),
		Source:         source,
		Kind:           item.Kind,
		Index:          p.Cursor(),
		Total:          p.Len(),
		Label:          p.Label(),
		Title:          item.OriginalFilename,
		Mode:           mode,
		DownloadURL:    downloadURL(item.StoredFilename),
		DownloadTarget: "_blank",
		CanPrev:        p.CanPrev(),
		CanNext:        p.CanNext(),
	}
	switch mode {
	case preview.ModePDF:
		view.EmbedURL = previewURL(item.StoredFilename)
		view.ThumbnailURL = "/panel/thumbnail?page=1"
	case preview.ModeOfficeDocument:
		view.Notice = OfficeDocumentNotice
	default:
		view.Notice = UnsupportedNotice
	}
	return view
}
