package metadata

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinescope/cinescope/internal/metadata/tmdb"
)

// Handlers provides HTTP handlers for metadata operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new metadata handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// ErrorResponse is the body returned when a record cannot be built.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// RegisterRoutes registers the metadata routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/media/:kind/:id", h.GetMedia)
	g.GET("/search", h.Search)
	g.GET("/trending", h.GetTrending)
	g.GET("/person/:id", h.GetPerson)
	g.GET("/letterboxd/:username/status", h.GetPersonalStatus)

	// Provider status
	g.GET("/status", h.GetStatus)
}

// GetMedia aggregates one movie or series.
// GET /api/v1/media/:kind/:id
func (h *Handlers) GetMedia(c echo.Context) error {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	record, err := h.service.Aggregate(c.Request().Context(), id, kind)
	if err != nil {
		var aggErr *AggregationError
		if errors.As(err, &aggErr) {
			status := http.StatusBadGateway
			if !aggErr.Retryable() {
				status = http.StatusBadRequest
			}
			return c.JSON(status, ErrorResponse{Error: aggErr.Message, Retryable: aggErr.Retryable()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, record)
}

// Search searches one kind of title, or people. Always answers 200.
// GET /api/v1/search?query=...&kind=movie|series|person
func (h *Handlers) Search(c echo.Context) error {
	results := h.service.Search(c.Request().Context(), c.QueryParam("query"), c.QueryParam("kind"))
	return c.JSON(http.StatusOK, results)
}

// GetTrending lists this week's trending movies.
// GET /api/v1/trending
func (h *Handlers) GetTrending(c echo.Context) error {
	items, err := h.service.Trending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch trending movies")
	}
	return c.JSON(http.StatusOK, items)
}

// GetPerson returns a person's profile and filmography.
// GET /api/v1/person/:id
func (h *Handlers) GetPerson(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	profile, err := h.service.PersonProfile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "person not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch person")
	}

	return c.JSON(http.StatusOK, profile)
}

// GetPersonalStatus returns a Letterboxd member's rating of a film.
// GET /api/v1/letterboxd/:username/status?id=tt1375666
func (h *Handlers) GetPersonalStatus(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	id := strings.TrimSpace(c.QueryParam("id"))
	if username == "" || id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and id are required")
	}

	return c.JSON(http.StatusOK, h.service.PersonalStatus(c.Request().Context(), username, id))
}

// GetStatus returns the status of configured metadata providers.
// GET /api/v1/status
func (h *Handlers) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ProviderStatus())
}
