package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	svc *service.MovieService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// List returns a paginated list of movies.
func (h *MovieHandler) List(c fiber.Ctx) error {
	params := models.MovieListParams{
		Page:            fiber.Query(c, "page", 1),
		PageSize:        fiber.Query(c, "page_size", 20),
		SortBy:          c.Query("sort_by", "rating"),
		Order:           c.Query("order", "desc"),
		ReleaseDateFrom: c.Query("release_date_from"),
		ReleaseDateTo:   c.Query("release_date_to"),
	}

	result, err := h.svc.List(c.Context(), params)
	if err != nil {
		return fail(c, err, "failed to retrieve movies")
	}
	return c.JSON(result)
}

// Detail returns detailed info for a single movie.
func (h *MovieHandler) Detail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	detail, err := h.svc.GetDetail(c.Context(), id)
	if err != nil {
		return fail(c, err, "failed to retrieve movie details")
	}
	return c.JSON(detail)
}

// Sync triggers a sync of movies from TMDB.
func (h *MovieHandler) Sync(c fiber.Ctx) error {
	pages := fiber.Query(c, "pages", 5)
	if pages < 1 {
		pages = 1
	}
	if pages > 50 {
		pages = 50
	}

	count, err := h.svc.Sync(c.Context(), pages)
	if err != nil {
		return fail(c, err, "sync failed")
	}
	return c.JSON(fiber.Map{
		"message":       "sync completed",
		"movies_synced": count,
		"pages":         pages,
	})
}
