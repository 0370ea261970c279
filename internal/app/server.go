package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/minbar-sermons-api/internal/handlers"
	"github.com/minbar-sermons-api/internal/middleware"
	"go.uber.org/zap"
)

// NewServer creates the echo instance with every route registered
func (a *App) NewServer() *echo.Echo {
	cfg := a.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(a.logger))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware(cfg))

	// Create API group with prefix
	api := e.Group(cfg.APIPrefix)

	// Register handlers
	handlers.NewHealthHandler(a.Store, cfg.StorageBackend).RegisterRoutes(api)
	handlers.NewSermonHandler(a.Sermons).RegisterRoutes(api)
	handlers.NewGenerationHandler(a.Sermons).RegisterRoutes(api)

	// Root health check
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	return e
}

// Serve runs the server until ctx is done, then shuts it down gracefully
func (a *App) Serve(ctx context.Context) error {
	e := a.NewServer()
	addr := a.Config.Addr()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server",
			zap.String("name", a.Config.APITitle),
			zap.String("version", a.Config.APIVersion),
			zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
