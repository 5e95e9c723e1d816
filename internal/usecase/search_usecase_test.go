package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/logger"
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/search"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func newSearch(b *fakeBackend) *SearchUsecase {
	return NewSearchUsecase(b, logger.Discard(), time.UTC)
}

func TestSubmitWithHiddenFiltersSendsQueryOnly(t *testing.T) {
	backend := &fakeBackend{searchResults: []model.SearchResult{{FileRef: model.FileRef{ID: "r1"}, MatchScore: 0.9}}}
	uc := newSearch(backend)
	ws := newWorkspace(t)

	require.NoError(t, uc.UpdateFilters(ws, dto.FilterRequest{BatchMax: intPtr(2010)}))
	view, err := uc.Submit(context.Background(), ws, "python")
	require.NoError(t, err)

	assert.Equal(t, []string{"query=python"}, backend.searchQueries)
	assert.Len(t, view.Results, 1)
	assert.False(t, view.Loading)
	assert.Equal(t, "python", view.Query)
}

func TestSubmitWithVisibleFilters(t *testing.T) {
	backend := &fakeBackend{}
	uc := newSearch(backend)
	ws := newWorkspace(t)

	assert.True(t, uc.ToggleFilters(ws))
	require.NoError(t, uc.UpdateFilters(ws, dto.FilterRequest{BatchMax: intPtr(2010)}))
	view, err := uc.Submit(context.Background(), ws, "java")
	require.NoError(t, err)

	assert.Equal(t, []string{"query=java&batch_max=2010"}, backend.searchQueries)
	assert.Equal(t, "Batch: 1950-2010", view.Filters.Summary)
	assert.Equal(t, `No matches found for "java".`, view.EmptyState)
}

func TestSubmitFailureKeepsPriorResults(t *testing.T) {
	backend := &fakeBackend{searchResults: []model.SearchResult{{FileRef: model.FileRef{ID: "r1"}}}}
	uc := newSearch(backend)
	ws := newWorkspace(t)
	_, err := uc.Submit(context.Background(), ws, "go")
	require.NoError(t, err)

	backend.searchErr = util.BackendError("x", 500, "")
	view, err := uc.Submit(context.Background(), ws, "rust")
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	assert.Equal(t, "r1", view.Results[0].ID)
	assert.False(t, view.Loading)
}

func TestSubmitBlankTermIsRejected(t *testing.T) {
	backend := &fakeBackend{searchResults: []model.SearchResult{{FileRef: model.FileRef{ID: "r1"}}}}
	uc := newSearch(backend)
	ws := newWorkspace(t)
	_, err := uc.Submit(context.Background(), ws, "go")
	require.NoError(t, err)

	for _, term := range []string{"", "   ", "\t\n"} {
		_, err = uc.Submit(context.Background(), ws, term)
		assert.True(t, util.IsCode(err, util.CodeInvalidArgument), "term %q", term)
	}

	assert.Equal(t, []string{"query=go"}, backend.searchQueries)
	view := uc.View(ws)
	assert.Equal(t, "go", view.Query)
	assert.False(t, view.Loading)
	require.Len(t, view.Results, 1)
	assert.Equal(t, "r1", view.Results[0].ID)
}

func TestStaleSearchResponseIsDropped(t *testing.T) {
	backend := &fakeBackend{searchResults: []model.SearchResult{{FileRef: model.FileRef{ID: "stale"}}}}
	uc := newSearch(backend)
	ws := newWorkspace(t)

	backend.searchHook = func() {
		backend.searchHook = nil
		backend.searchResults = []model.SearchResult{{FileRef: model.FileRef{ID: "fresh"}}}
		_, _ = uc.Submit(context.Background(), ws, "newer")
	}
	view, err := uc.Submit(context.Background(), ws, "older")
	require.NoError(t, err)

	require.Len(t, view.Results, 1)
	assert.Equal(t, "fresh", view.Results[0].ID)
	assert.Equal(t, "newer", view.Query)
}

func TestUpdateFiltersValidation(t *testing.T) {
	uc := newSearch(&fakeBackend{})
	ws := newWorkspace(t)

	err := uc.UpdateFilters(ws, dto.FilterRequest{BatchMin: intPtr(2020), BatchMax: intPtr(2000), LastEducation: strPtr("MSc")})
	assert.True(t, util.IsCode(err, util.CodeInvalidArgument))

	err = uc.UpdateFilters(ws, dto.FilterRequest{UploadRange: strPtr("5y")})
	assert.True(t, util.IsCode(err, util.CodeInvalidArgument))
	assert.Equal(t, search.DefaultFilterSet(), uc.View(ws).Filters.Filters)

	require.NoError(t, uc.UpdateFilters(ws, dto.FilterRequest{
		BatchMin:      intPtr(1900),
		LastEducation: strPtr("Bachelor"),
		UploadRange:   strPtr("6m"),
	}))
	f := uc.View(ws).Filters.Filters
	assert.Equal(t, search.BatchFloor, f.BatchMin)
	assert.Equal(t, "Bachelor", f.LastEducation)
	assert.Equal(t, search.Within6Months, f.UploadRange)

	require.NoError(t, uc.UpdateFilters(ws, dto.FilterRequest{ClearUploadRange: true}))
	assert.Equal(t, search.RecencyAny, uc.View(ws).Filters.Filters.UploadRange)

	uc.ResetFilters(ws)
	assert.Equal(t, search.DefaultFilterSet(), uc.View(ws).Filters.Filters)
	assert.True(t, uc.ToggleFilters(ws))
	assert.False(t, uc.ToggleFilters(ws))
}

func TestSearchViewBeforeAnyQuery(t *testing.T) {
	view := newSearch(&fakeBackend{}).View(newWorkspace(t))
	assert.Equal(t, "Start by entering a search query.", view.EmptyState)
	assert.NotNil(t, view.Results)
}
