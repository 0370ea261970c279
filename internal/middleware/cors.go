package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minbar-sermons-api/internal/config"
)

// corsMaxAge lets browsers cache preflights while the view polls
// generation status and preview results.
const corsMaxAge = 600

// CORSMiddleware returns a CORS middleware for the configured view origins.
// The request id is exposed so the view can quote it when reporting a
// failed generation.
func CORSMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}
