package service

import (
	"context"

	"github.com/fadilmartias/cv-dashboard/internal/preview"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/sirupsen/logrus"
)

// PageRenderer turns page n (0-based) of a PDF into PNG bytes and reports the
// page count.
type PageRenderer func(data []byte, n int) ([]byte, int, error)

type Thumbnail struct {
	PNG   []byte
	Page  int
	Pages int
}

type ThumbnailServiceInterface interface {
	Render(ctx context.Context, storedFilename string, page int) (Thumbnail, error)
}

type ThumbnailService struct {
	backend BackendServiceInterface
	render  PageRenderer
	log     *logrus.Logger
}

func NewThumbnailService(backend BackendServiceInterface, render PageRenderer, log *logrus.Logger) *ThumbnailService {
	if render == nil {
		render = util.RenderPDFPage
	}
	return &ThumbnailService{backend: backend, render: render, log: log}
}

// Render fetches the stored PDF and rasterizes one page. page is 1-based.
func (s *ThumbnailService) Render(ctx context.Context, storedFilename string, page int) (Thumbnail, error) {
	const op = "ThumbnailService.Render"
	if preview.Classify(storedFilename) != preview.ModePDF {
		return Thumbnail{}, util.E(util.CodeInvalidArgument, op, "thumbnails are only available for PDF files", nil)
	}
	if page < 1 {
		page = 1
	}

	data, err := s.backend.FetchPreview(ctx, storedFilename)
	if err != nil {
		return Thumbnail{}, err
	}

	png, pages, err := s.render(data, page-1)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"file":  storedFilename,
			"page":  page,
			"pages": pages,
		}).WithError(err).Warn("thumbnail render failed")
		if pages > 0 && page > pages {
			return Thumbnail{}, util.E(util.CodeNotFound, op, "page out of range", err)
		}
		return Thumbnail{}, util.E(util.CodeInternal, op, "cannot render preview", err)
	}
	return Thumbnail{PNG: png, Page: page, Pages: pages}, nil
}
