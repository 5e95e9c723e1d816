package handler

import (
	"io"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/middleware"
	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/response"
	"github.com/fadilmartias/cv-dashboard/internal/usecase"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	uc    *usecase.DashboardUsecase
	guard fiber.Handler
}

func NewDashboardHandler(uc *usecase.DashboardUsecase, guard fiber.Handler) *DashboardHandler {
	return &DashboardHandler{uc: uc, guard: guard}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App) {
	g := app.Group("/dashboard", h.guard)
	g.Get("/", h.Index)
	g.Post("/file", h.StageFile)
	g.Post("/tags", h.AddTag)
	g.Delete("/tags/:tag", h.RemoveTag)
	g.Post("/upload", middleware.RateLimiter(5, 10*time.Second), h.Upload)
	g.Delete("/cvs/:id", h.Delete)
}

func (h *DashboardHandler) page(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("page_size", response.DefaultPageSize)
}

func (h *DashboardHandler) respond(c *fiber.Ctx, message string) error {
	page, size := h.page(c)
	view := h.uc.View(middleware.CurrentWorkspace(c), page, size)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    message,
		Data:       view,
		Pagination: view.Pagination,
	})
}

// Index reloads the list from the backend. A failed reload still renders the
// rows already held.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	_ = h.uc.Refresh(c.UserContext(), middleware.CurrentWorkspace(c))
	return h.respond(c, "Success get CVs")
}

func (h *DashboardHandler) StageFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}
	if err := h.stage(c, file); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	return h.respond(c, "File selected")
}

func (h *DashboardHandler) stage(c *fiber.Ctx, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return util.E(util.CodeInvalidArgument, "DashboardHandler.stage", "cannot read file", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return util.E(util.CodeInvalidArgument, "DashboardHandler.stage", "cannot read file", err)
	}
	return h.uc.StageFile(middleware.CurrentWorkspace(c), model.Upload{Filename: fh.Filename, Content: content})
}

func (h *DashboardHandler) AddTag(c *fiber.Ctx) error {
	var req dto.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid tag payload",
		}, err)
	}
	h.uc.AddTag(middleware.CurrentWorkspace(c), req.Tag)
	return h.respond(c, "Tags updated")
}

func (h *DashboardHandler) RemoveTag(c *fiber.Ctx) error {
	tag, err := url.PathUnescape(c.Params("tag"))
	if err != nil {
		tag = c.Params("tag")
	}
	h.uc.RemoveTag(middleware.CurrentWorkspace(c), tag)
	return h.respond(c, "Tags updated")
}

// Upload submits the staged file. A file attached to this request replaces
// the staged one first.
func (h *DashboardHandler) Upload(c *fiber.Ctx) error {
	if fh, err := c.FormFile("file"); err == nil {
		if err := h.stage(c, fh); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
		}
	}

	ws := middleware.CurrentWorkspace(c)
	if err := h.uc.Upload(c.UserContext(), ws); err != nil {
		page, size := h.page(c)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Details: h.uc.View(ws, page, size),
		}, err)
	}
	return h.respond(c, "Upload accepted")
}

func (h *DashboardHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), middleware.CurrentWorkspace(c), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	return h.respond(c, "CV deleted")
}
