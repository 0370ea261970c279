package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/minbar-sermons-api/internal/repository"
	"github.com/minbar-sermons-api/internal/services"
)

// SermonHandler handles catalog, surah and progress endpoints
type SermonHandler struct {
	sermons *services.SermonService
}

// NewSermonHandler creates a new sermon handler
func NewSermonHandler(sermons *services.SermonService) *SermonHandler {
	return &SermonHandler{sermons: sermons}
}

// ListSermons handles GET /sermons?surah=&q=
func (h *SermonHandler) ListSermons(c echo.Context) error {
	var surah int
	var search string
	if err := echo.QueryParamsBinder(c).
		Int("surah", &surah).
		String("q", &search).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid surah number")
	}

	state := services.AppState{}.SelectSurah(surah).WithSearch(search)
	return c.JSON(http.StatusOK, h.sermons.ListSermons(state))
}

// GetSermon handles GET /sermons/:id
func (h *SermonHandler) GetSermon(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}

	sermon, err := h.sermons.GetSermon(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sermon not found")
	}
	return c.JSON(http.StatusOK, sermon)
}

// ToggleComplete handles POST /sermons/:id/complete
func (h *SermonHandler) ToggleComplete(c echo.Context) error {
	id, err := pathInt(c, "id")
	if err != nil {
		return err
	}

	res, err := h.sermons.ToggleComplete(c.Request().Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Sermon not found")
	case errors.Is(err, repository.ErrStorage):
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save progress: "+err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

// Progress handles GET /progress
func (h *SermonHandler) Progress(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sermons.Progress())
}

// ListSurahs handles GET /surahs
func (h *SermonHandler) ListSurahs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sermons.Surahs())
}

// Sections handles GET /surahs/:number/sections
func (h *SermonHandler) Sections(c echo.Context) error {
	number, err := pathInt(c, "number")
	if err != nil {
		return err
	}

	sections, err := h.sermons.Sections(number)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Surah not found")
	}
	return c.JSON(http.StatusOK, sections)
}

// RegisterRoutes registers sermon routes
func (h *SermonHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/sermons", h.ListSermons)
	g.GET("/sermons/:id", h.GetSermon)
	g.POST("/sermons/:id/complete", h.ToggleComplete)
	g.GET("/progress", h.Progress)
	g.GET("/surahs", h.ListSurahs)
	g.GET("/surahs/:number/sections", h.Sections)
}

func pathInt(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return value, nil
}
