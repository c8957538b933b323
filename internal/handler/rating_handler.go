package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	svc *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// Rate creates or overwrites the caller's rating of a movie.
func (h *RatingHandler) Rate(c fiber.Ctx) error {
	var req models.RateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	rating, err := h.svc.Rate(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err, "failed to save rating")
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// List returns all of the caller's ratings.
func (h *RatingHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to retrieve ratings")
	}
	return c.JSON(items)
}

// Favorites returns the caller's favorite-flagged ratings.
func (h *RatingHandler) Favorites(c fiber.Ctx) error {
	items, err := h.svc.Favorites(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to retrieve favorites")
	}
	return c.JSON(items)
}

// Delete removes the caller's rating of a movie.
func (h *RatingHandler) Delete(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.svc.Delete(c.Context(), middleware.UserID(c), movieID); err != nil {
		return fail(c, err, "failed to delete rating")
	}
	return c.JSON(fiber.Map{"message": "rating deleted"})
}
