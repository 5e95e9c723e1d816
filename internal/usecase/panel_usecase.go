package usecase

import (
	"context"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/preview"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/service"
	"github.com/fadilmartias/cv-dashboard/internal/util"
)

type PanelUsecase struct {
	backend    service.BackendServiceInterface
	thumbnails service.ThumbnailServiceInterface
}

func NewPanelUsecase(backend service.BackendServiceInterface, thumbnails service.ThumbnailServiceInterface) *PanelUsecase {
	return &PanelUsecase{backend: backend, thumbnails: thumbnails}
}

func (uc *PanelUsecase) render(st repository.State) dto.PanelDTO {
	return dto.NewPanelDTO(st.Panel, string(st.PanelSource), uc.backend.PreviewURL, uc.backend.DownloadURL)
}

func (uc *PanelUsecase) View(ws *repository.Workspace) dto.PanelDTO {
	var view dto.PanelDTO
	ws.View(func(st repository.State) { view = uc.render(st) })
	return view
}

// Open shows the record at index of the list the source page is displaying.
func (uc *PanelUsecase) Open(ws *repository.Workspace, source string, index int) (dto.PanelDTO, error) {
	const op = "PanelUsecase.Open"

	var (
		view dto.PanelDTO
		err  error
	)
	ws.Update(func(st *repository.State) {
		var items []model.PanelItem
		switch repository.PanelSource(source) {
		case repository.SourceDashboard:
			items = model.PanelItemsFromCVs(st.Dashboard.CVs)
		case repository.SourceSearch:
			items = model.PanelItemsFromResults(st.Search.Results)
		default:
			err = util.E(util.CodeInvalidArgument, op, "source must be dashboard or search", nil)
			return
		}
		if openErr := st.Panel.Open(items, index); openErr != nil {
			err = util.E(util.CodeInvalidArgument, op, openErr.Error(), openErr)
			return
		}
		st.PanelSource = repository.PanelSource(source)
		view = uc.render(*st)
	})
	return view, err
}

func (uc *PanelUsecase) apply(ws *repository.Workspace, fn func(p *preview.Panel)) dto.PanelDTO {
	var view dto.PanelDTO
	ws.Update(func(st *repository.State) {
		fn(&st.Panel)
		if !st.Panel.IsOpen() {
			st.PanelSource = ""
		}
		view = uc.render(*st)
	})
	return view
}

func (uc *PanelUsecase) Next(ws *repository.Workspace) dto.PanelDTO {
	return uc.apply(ws, (*preview.Panel).Next)
}

func (uc *PanelUsecase) Prev(ws *repository.Workspace) dto.PanelDTO {
	return uc.apply(ws, (*preview.Panel).Prev)
}

func (uc *PanelUsecase) Close(ws *repository.Workspace) dto.PanelDTO {
	return uc.apply(ws, (*preview.Panel).Close)
}

func (uc *PanelUsecase) Click(ws *repository.Workspace, target string) (dto.PanelDTO, error) {
	t := preview.ClickTarget(target)
	if t != preview.ClickOverlay && t != preview.ClickContent {
		return dto.PanelDTO{}, util.E(util.CodeInvalidArgument, "PanelUsecase.Click", "target must be overlay or content", nil)
	}
	return uc.apply(ws, func(p *preview.Panel) { p.Click(t) }), nil
}

// Thumbnail renders a page of the PDF under the cursor.
func (uc *PanelUsecase) Thumbnail(ctx context.Context, ws *repository.Workspace, page int) (service.Thumbnail, error) {
	var (
		item model.PanelItem
		ok   bool
	)
	ws.View(func(st repository.State) { item, ok = st.Panel.Current() })
	if !ok {
		return service.Thumbnail{}, util.E(util.CodeNotFound, "PanelUsecase.Thumbnail", "preview panel is closed", nil)
	}
	return uc.thumbnails.Render(ctx, item.StoredFilename, page)
}
