package middleware

import (
	"strings"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/config"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/session"
	"github.com/gofiber/fiber/v2"
)

const (
	LocalsSession   = "session"
	LocalsWorkspace = "workspace"
)

// SessionFromRequest reads the credential from the Authorization header or,
// failing that, the session cookie.
func SessionFromRequest(c *fiber.Ctx, cookieName string) session.Session {
	if auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); auth != "" {
		return session.FromToken(auth)
	}
	return session.FromToken(c.Cookies(cookieName))
}

// SessionGuard redirects to the login page before any backend call when the
// caller has no credential or it has expired. Otherwise the session and its
// workspace are stored in Locals.
func SessionGuard(repo repository.WorkspaceRepositoryInterface, cfg *config.SessionConfig, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		sess := SessionFromRequest(c, cfg.CookieName)
		ws, ok := repo.Attach(sess, now())
		if !ok {
			if token, has := sess.Token(); has {
				repo.Drop(token)
				c.ClearCookie(cfg.CookieName)
			}
			return c.Redirect(cfg.LoginPath, fiber.StatusFound)
		}

		c.Locals(LocalsSession, sess)
		c.Locals(LocalsWorkspace, ws)
		return c.Next()
	}
}

func CurrentSession(c *fiber.Ctx) session.Session {
	if sess, ok := c.Locals(LocalsSession).(session.Session); ok {
		return sess
	}
	return session.Anonymous()
}

func CurrentWorkspace(c *fiber.Ctx) *repository.Workspace {
	ws, _ := c.Locals(LocalsWorkspace).(*repository.Workspace)
	return ws
}
