package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minbar-sermons-api/internal/generation"
	"github.com/minbar-sermons-api/internal/models"
	"github.com/minbar-sermons-api/internal/services"
	"github.com/minbar-sermons-api/internal/validation"
)

// GenerationHandler handles sermon generation and verse preview endpoints
type GenerationHandler struct {
	sermons *services.SermonService
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(sermons *services.SermonService) *GenerationHandler {
	return &GenerationHandler{sermons: sermons}
}

// Generate handles POST /sermons/generate
func (h *GenerationHandler) Generate(c echo.Context) error {
	var req models.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	sermon, err := h.sermons.Generate(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(generationStatusCode(err), services.UserMessage(err))
	}
	return c.JSON(http.StatusCreated, sermon)
}

// Status handles GET /sermons/generate/status
func (h *GenerationHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sermons.Status())
}

// RequestPreview handles POST /preview
func (h *GenerationHandler) RequestPreview(c echo.Context) error {
	var req models.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.JSON(http.StatusAccepted, h.sermons.RequestPreview(req.SurahNumber, req.Topic))
}

// Preview handles GET /preview
func (h *GenerationHandler) Preview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sermons.Preview())
}

// RegisterRoutes registers generation routes
func (h *GenerationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sermons/generate", h.Generate)
	g.GET("/sermons/generate/status", h.Status)
	g.POST("/preview", h.RequestPreview)
	g.GET("/preview", h.Preview)
}

func generationStatusCode(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, validation.ErrMalformedResponse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
