package dto

import (
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/response"
)

const (
	NoNameLabel = "(No name found)"
	NoTagsLabel = "No tags"

	rowTimeLayout = "2006-01-02 15:04:05"
)

type CVRowDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	HasName          bool     `json:"has_name"`
	OriginalFilename string   `json:"original_filename"`
	StoredFilename   string   `json:"stored_filename"`
	Status           string   `json:"status"`
	Error            string   `json:"error,omitempty"`
	Tags             []string `json:"tags"`
	TagsLabel        string   `json:"tags_label,omitempty"`
	UploadedAt       string   `json:"uploaded_at"`
}

// NewCVRow derives the display row. Timestamps are rendered in loc.
func NewCVRow(cv model.CVRecord, loc *time.Location) CVRowDTO {
	row := CVRowDTO{
		ID:               cv.ID,
		Name:             cv.Name,
		HasName:          cv.Name != "",
		OriginalFilename: cv.OriginalFilename,
		StoredFilename:   cv.StoredFilename,
		Status:           string(cv.Status),
		Error:            cv.Error,
		Tags:             append([]string{}, cv.Tags...),
	}
	if !row.HasName {
		row.Name = NoNameLabel
	}
	if len(row.Tags) == 0 {
		row.TagsLabel = NoTagsLabel
	}
	if !cv.UploadedAt.IsZero() {
		row.UploadedAt = formatIn(cv.UploadedAt, loc, rowTimeLayout)
	}
	return row
}

type DashboardViewDTO struct {
	Message    string               `json:"message"`
	StagedFile string               `json:"staged_file,omitempty"`
	Tags       model.TagSet         `json:"tags"`
	Uploading  bool                 `json:"uploading"`
	Rows       []CVRowDTO           `json:"rows"`
	Pagination *response.Pagination `json:"-"`
}

// NewDashboardView pages cvs and renders the visible rows.
func NewDashboardView(message string, staged *model.Upload, tags model.TagSet, uploading bool, cvs []model.CVRecord, page, pageSize int, loc *time.Location) DashboardViewDTO {
	p := response.NewPagination(page, pageSize, len(cvs))
	lo, hi := p.Bounds()

	rows := make([]CVRowDTO, 0, hi-lo)
	for _, cv := range cvs[lo:hi] {
		rows = append(rows, NewCVRow(cv, loc))
	}

	view := DashboardViewDTO{
		Message:    message,
		Tags:       tags,
		Uploading:  uploading,
		Rows:       rows,
		Pagination: &p,
	}
	if staged != nil {
		view.StagedFile = staged.Filename
	}
	return view
}

func formatIn(t time.Time, loc *time.Location, layout string) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}
