package handler

import (
	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/middleware"
	"github.com/fadilmartias/cv-dashboard/internal/usecase"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	uc    *usecase.SearchUsecase
	guard fiber.Handler
}

func NewSearchHandler(uc *usecase.SearchUsecase, guard fiber.Handler) *SearchHandler {
	return &SearchHandler{uc: uc, guard: guard}
}

func (h *SearchHandler) RegisterRoutes(app *fiber.App) {
	g := app.Group("/search", h.guard)
	g.Get("/", h.Index)
	g.Post("/", h.Submit)
	g.Post("/filters", h.UpdateFilters)
	g.Post("/filters/toggle", h.ToggleFilters)
	g.Post("/filters/reset", h.ResetFilters)
}

func (h *SearchHandler) view(c *fiber.Ctx, message string) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    h.uc.View(middleware.CurrentWorkspace(c)),
	})
}

func (h *SearchHandler) Index(c *fiber.Ctx) error {
	return h.view(c, "Success get search")
}

// Submit answers 200 even when the backend search fails; the previous
// results are kept. Only a blank query is rejected.
func (h *SearchHandler) Submit(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid search payload",
		}, err)
	}
	view, err := h.uc.Submit(c.UserContext(), middleware.CurrentWorkspace(c), req.Query)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search CVs",
		Data:    view,
	})
}

func (h *SearchHandler) UpdateFilters(c *fiber.Ctx) error {
	var req dto.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid filter payload",
		}, err)
	}
	if err := h.uc.UpdateFilters(middleware.CurrentWorkspace(c), req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	return h.view(c, "Filters updated")
}

func (h *SearchHandler) ToggleFilters(c *fiber.Ctx) error {
	h.uc.ToggleFilters(middleware.CurrentWorkspace(c))
	return h.view(c, "Filters toggled")
}

func (h *SearchHandler) ResetFilters(c *fiber.Ctx) error {
	h.uc.ResetFilters(middleware.CurrentWorkspace(c))
	return h.view(c, "Filters reset")
}
