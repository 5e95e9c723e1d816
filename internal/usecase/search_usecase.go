package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/search"
	"github.com/fadilmartias/cv-dashboard/internal/service"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/sirupsen/logrus"
)

type SearchUsecase struct {
	backend service.BackendServiceInterface
	log     *logrus.Logger
	loc     *time.Location
}

func NewSearchUsecase(backend service.BackendServiceInterface, log *logrus.Logger, loc *time.Location) *SearchUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &SearchUsecase{backend: backend, log: log, loc: loc}
}

func (uc *SearchUsecase) View(ws *repository.Workspace) dto.SearchViewDTO {
	var view dto.SearchViewDTO
	ws.View(func(st repository.State) {
		view = dto.NewSearchView(st.Search.Query, st.Search.Results, st.Search.Loading, uc.loc)
	})
	return view
}

// Submit runs one search for term with the current filter panel. A failed
// request is only logged: the previous results stay on the page. A blank
// term is rejected before the workspace is touched.
func (uc *SearchUsecase) Submit(ctx context.Context, ws *repository.Workspace, term string) (dto.SearchViewDTO, error) {
	if strings.TrimSpace(term) == "" {
		return dto.SearchViewDTO{}, util.E(util.CodeInvalidArgument, "SearchUsecase.Submit", "search query is required", nil)
	}

	var (
		q   search.Query
		seq uint64
	)
	ws.Update(func(st *repository.State) {
		st.Search.Query.Term = term
		st.Search.Loading = true
		st.Search.Seq++
		q, seq = st.Search.Query, st.Search.Seq
	})

	entry := uc.log.WithFields(logrus.Fields{"workspace_id": ws.ID(), "query": q.Encode()})
	results, err := uc.backend.SearchCVs(ctx, ws.Session(), q.Encode())
	if err != nil {
		entry.WithError(err).Warn("search request failed")
	} else {
		entry.WithField("results", len(results)).Debug("search completed")
	}

	ws.Update(func(st *repository.State) {
		if st.Search.Seq != seq {
			return
		}
		st.Search.Loading = false
		if err == nil {
			st.Search.Results = results
		}
	})
	return uc.View(ws), nil
}

// UpdateFilters applies the non-nil fields of req. Nothing changes when any
// field is invalid.
func (uc *SearchUsecase) UpdateFilters(ws *repository.Workspace, req dto.FilterRequest) error {
	const op = "SearchUsecase.UpdateFilters"

	var bucket search.RecencyBucket
	if req.UploadRange != nil {
		b, err := search.ParseRecencyBucket(*req.UploadRange)
		if err != nil {
			return util.E(util.CodeInvalidArgument, op, err.Error(), err)
		}
		bucket = b
	}

	var err error
	ws.Update(func(st *repository.State) {
		f := st.Search.Query.Filters
		if req.BatchMin != nil || req.BatchMax != nil {
			lo, hi := f.BatchMin, f.BatchMax
			if req.BatchMin != nil {
				lo = *req.BatchMin
			}
			if req.BatchMax != nil {
				hi = *req.BatchMax
			}
			if rangeErr := f.SetBatchRange(lo, hi); rangeErr != nil {
				err = util.E(util.CodeInvalidArgument, op, rangeErr.Error(), rangeErr)
				return
			}
		}
		if req.LastEducation != nil {
			f.LastEducation = *req.LastEducation
		}
		if req.UploadRange != nil {
			f.UploadRange = bucket
		}
		if req.ClearUploadRange {
			f.UploadRange = search.RecencyAny
		}
		st.Search.Query.Filters = f
	})
	return err
}

func (uc *SearchUsecase) ToggleFilters(ws *repository.Workspace) bool {
	var visible bool
	ws.Update(func(st *repository.State) {
		st.Search.Query.FiltersVisible = !st.Search.Query.FiltersVisible
		visible = st.Search.Query.FiltersVisible
	})
	return visible
}

func (uc *SearchUsecase) ResetFilters(ws *repository.Workspace) {
	ws.Update(func(st *repository.State) {
		st.Search.Query.Filters = search.DefaultFilterSet()
	})
}
