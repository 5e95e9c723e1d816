package handler

import (
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/config"
	"github.com/fadilmartias/cv-dashboard/internal/dto"
	"github.com/fadilmartias/cv-dashboard/internal/middleware"
	"github.com/fadilmartias/cv-dashboard/internal/usecase"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc  *usecase.AuthUsecase
	cfg *config.SessionConfig
	now func() time.Time
}

func NewAuthHandler(uc *usecase.AuthUsecase, cfg *config.SessionConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg, now: time.Now}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Get(h.cfg.LoginPath, h.LoginPage)
	app.Post(h.cfg.LoginPath, middleware.RateLimiter(10, 1*time.Minute), h.Login)
	app.Post("/register", middleware.RateLimiter(5, 1*time.Minute), h.Register)
	app.Post("/logout", h.Logout)
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Login required",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid login payload",
		}, err)
	}

	sess, err := h.uc.Login(c.UserContext(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}

	token, _ := sess.Token()
	expires := h.now().Add(h.cfg.CookieTTL)
	if exp := sess.ExpiresAt(); !exp.IsZero() && exp.Before(expires) {
		expires = exp
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   config.LoadAppConfig().IsProduction(),
	})

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Login successful",
		Data: fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
			"subject":      sess.Subject(),
			"expires_at":   expires,
		},
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid register payload",
		}, err)
	}

	msg, err := h.uc.Register(c.UserContext(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{}, err)
	}
	if msg == "" {
		msg = "Registration successful"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: msg,
	})
}

// Logout drops the workspace, clears the cookie and sends the user back to
// the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(middleware.SessionFromRequest(c, h.cfg.CookieName))
	c.ClearCookie(h.cfg.CookieName)
	return c.Redirect(h.cfg.LoginPath, fiber.StatusFound)
}
