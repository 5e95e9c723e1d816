package handler

import (
	"strconv"

	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/middleware"
	"github.com/fadilmartias/cv-dashboard/internal/usecase"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type PanelHandler struct {
	uc    *usecase.PanelUsecase
	guard fiber.Handler
}

func NewPanelHandler(uc *usecase.PanelUsecase, guard fiber.Handler) *PanelHandler {
	return &PanelHandler{uc: uc, guard: guard}
}

func (h *PanelHandler) RegisterRoutes(app *fiber.App) {
	g := app.Group("/panel", h.guard)
	g.Get("/", h.Show)
	g.Post("/open", h.Open)
	g.Post("/next", h.Next)
	g.Post("/prev", h.Prev)
	g.Post("/click", h.Click)
	g.Post("/close", h.Close)
	g.Get("/thumbnail", h.Thumbnail)
}

func panelResponse(c *fiber.Ctx, view dto.PanelDTO) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get panel",
		Data:    view,
	})
}

func (h *PanelHandler) Show(c *fiber.Ctx) error {
	return panelResponse(c, h.uc.View(middleware.CurrentWorkspace(c)))
}

func (h *PanelHandler) Open(c *fiber.Ctx) error {
	var req dto.PanelOpenRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid panel payload",
		}, err)
	}
	view, err := h.uc.Open(middleware.CurrentWorkspace(c), req.Source, req.Index)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	return panelResponse(c, view)
}

func (h *PanelHandler) Next(c *fiber.Ctx) error {
	return panelResponse(c, h.uc.Next(middleware.CurrentWorkspace(c)))
}

func (h *PanelHandler) Prev(c *fiber.Ctx) error {
	return panelResponse(c, h.uc.Prev(middleware.CurrentWorkspace(c)))
}

func (h *PanelHandler) Close(c *fiber.Ctx) error {
	return panelResponse(c, h.uc.Close(middleware.CurrentWorkspace(c)))
}

func (h *PanelHandler) Click(c *fiber.Ctx) error {
	var req dto.PanelClickRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid panel payload",
		}, err)
	}
	view, err := h.uc.Click(middleware.CurrentWorkspace(c), req.Target)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	return panelResponse(c, view)
}

// Thumbnail answers with the PNG of one page of the PDF under the cursor.
func (h *PanelHandler) Thumbnail(c *fiber.Ctx) error {
	thumb, err := h.uc.Thumbnail(c.UserContext(), middleware.CurrentWorkspace(c), c.QueryInt("page", 1))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	c.Set("X-Page", strconv.Itoa(thumb.Page))
	c.Set("X-Page-Count", strconv.Itoa(thumb.Pages))
	c.Type("png")
	return c.Send(thumb.PNG)
}
