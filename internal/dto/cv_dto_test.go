package dto

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCVRowFallbacks(t *testing.T) {
	row := NewCVRow(model.CVRecord{
		FileRef: model.FileRef{ID: "a", OriginalFilename: "a.pdf", StoredFilename: "x_a.pdf"},
		Status:  model.StatusParsing,
	}, time.UTC)

	assert.Equal(t, NoNameLabel, row.Name)
	assert.False(t, row.HasName)
	assert.Equal(t, NoTagsLabel, row.TagsLabel)
	assert.NotNil(t, row.Tags)
	assert.Equal(t, "parsing", row.Status)
	assert.Empty(t, row.UploadedAt)
}

func TestNewCVRowRendersInLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	row := NewCVRow(model.CVRecord{
		FileRef:    model.FileRef{ID: "a", Name: "Jane"},
		Tags:       []string{"go"},
		UploadedAt: time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC),
	}, jakarta)

	assert.Equal(t, "Jane", row.Name)
	assert.True(t, row.HasName)
	assert.Empty(t, row.TagsLabel)
	assert.Equal(t, "2024-05-02 03:30:00", row.UploadedAt)
}

func TestNewDashboardViewPages(t *testing.T) {
	cvs := make([]model.CVRecord, 25)
	for i := range cvs {
		cvs[i] = model.CVRecord{FileRef: model.FileRef{ID: string(rune('a' + i))}}
	}
	staged := &model.Upload{Filename: "resume.pdf"}

	view := NewDashboardView("hello", staged, model.NewTagSet("go"), false, cvs, 2, 10, time.UTC)
	require.Len(t, view.Rows, 10)
	assert.Equal(t, "k", view.Rows[0].ID)
	assert.Equal(t, "resume.pdf", view.StagedFile)
	require.NotNil(t, view.Pagination)
	assert.Equal(t, int64(3), view.Pagination.TotalPages)

	out, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tags":["go"]`)
}

func TestNewDashboardViewEmpty(t *testing.T) {
	view := NewDashboardView("", nil, model.TagSet{}, false, nil, 1, 20, time.UTC)
	assert.NotNil(t, view.Rows)
	assert.Empty(t, view.Rows)

	out, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tags":[]`)
	assert.Contains(t, string(out), `"rows":[]`)
}

func TestNewDashboardViewPageBeyondRange(t *testing.T) {
	cvs := []model.CVRecord{{FileRef: model.FileRef{ID: "a"}}}

	view := NewDashboardView("", nil, model.TagSet{}, false, cvs, math.MaxInt, 20, time.UTC)
	assert.Empty(t, view.Rows)
	require.NotNil(t, view.Pagination)
	assert.Equal(t, int64(1), view.Pagination.TotalItems)
}
