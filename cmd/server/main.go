package main

import (
	"context"
	"log"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/config"
	"github.com/fadilmartias/cv-dashboard/internal/domain/fiber/handler"
	"github.com/fadilmartias/cv-dashboard/internal/logger"
	"github.com/fadilmartias/cv-dashboard/internal/middleware"
	"github.com/fadilmartias/cv-dashboard/internal/poller"
	"github.com/fadilmartias/cv-dashboard/internal/repository"
	"github.com/fadilmartias/cv-dashboard/internal/service"
	"github.com/fadilmartias/cv-dashboard/internal/usecase"
	"github.com/fadilmartias/cv-dashboard/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	backendConfig := config.LoadBackendConfig()
	pollerConfig := config.LoadPollerConfig()
	sessionConfig := config.LoadSessionConfig()
	l := logger.New()

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    50 * 1024 * 1024,
		ErrorHandler: handler.ErrorHandler,
	})
	app.Use(middleware.RequestLogger(l))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(120, 1*time.Minute))

	workspaces := repository.NewWorkspaceRepository(sessionConfig.CookieTTL, l)
	backend := service.NewBackendService(backendConfig, l)
	thumbnails := service.NewThumbnailService(backend, util.RenderPDFPage, l)
	statusPoller := poller.New(pollerConfig.Interval, pollerConfig.MaxAttempts, l)

	authUC := usecase.NewAuthUsecase(backend, workspaces, l)
	dashboardUC := usecase.NewDashboardUsecase(backend, statusPoller, l, appConfig.TimeZone)
	searchUC := usecase.NewSearchUsecase(backend, l, appConfig.TimeZone)
	panelUC := usecase.NewPanelUsecase(backend, thumbnails)

	guard := middleware.SessionGuard(workspaces, sessionConfig, time.Now)
	handler.NewAuthHandler(authUC, sessionConfig).RegisterRoutes(app)
	handler.NewDashboardHandler(dashboardUC, guard).RegisterRoutes(app)
	handler.NewSearchHandler(searchUC, guard).RegisterRoutes(app)
	handler.NewPanelHandler(panelUC, guard).RegisterRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepWorkspaces(ctx, workspaces, sessionConfig.SweepInterval, l)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.WithField("goroutines", runtime.NumGoroutine()).Debug("active goroutines")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		l.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			l.WithError(err).Error("shutdown failed")
		}
	}()

	l.WithFields(logrus.Fields{
		"port":    appConfig.Port,
		"backend": backendConfig.BaseURL,
	}).Info("server running")
	if err := app.Listen(appConfig.Port); err != nil {
		l.WithError(err).Fatal("server stopped")
	}
}

// sweepWorkspaces drops expired or idle workspaces until ctx is done.
func sweepWorkspaces(ctx context.Context, repo *repository.WorkspaceRepository, every time.Duration, l *logrus.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := repo.Sweep(now); n > 0 {
				l.WithFields(logrus.Fields{"dropped": n, "remaining": repo.Len()}).Info("workspace sweep")
			}
		}
	}
}
