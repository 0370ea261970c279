package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minbar-sermons-api/internal/repository"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store   repository.KeyValueStore
	backend string
}

// NewHealthHandler creates a new health handler. backend names the
// configured storage backend in responses.
func NewHealthHandler(store repository.KeyValueStore, backend string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend}
}

// HealthResponse is the response for basic health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StorageHealthResponse is the response for storage health check
type StorageHealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// StorageHealth handles GET /health/storage
func (h *HealthHandler) StorageHealth(c echo.Context) error {
	if h.store == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_configured",
			"error":  "progress storage is not configured",
		})
	}

	if err := h.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, StorageHealthResponse{
		Status:  "connected",
		Storage: h.backend,
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/health/storage", h.StorageHealth)
}
