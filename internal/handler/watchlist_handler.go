package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// WatchlistHandler handles HTTP requests for watchlists.
type WatchlistHandler struct {
	svc *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(svc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

// Add queues a movie on the caller's watchlist.
func (h *WatchlistHandler) Add(c fiber.Ctx) error {
	var req models.AddWatchlistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	item, err := h.svc.Add(c.Context(), middleware.UserID(c), req)
	if err != nil {
		return fail(c, err, "failed to add to watchlist")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List returns the caller's watchlist.
func (h *WatchlistHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to retrieve watchlist")
	}
	return c.JSON(items)
}

// Update edits the priority and notes of a queued movie.
func (h *WatchlistHandler) Update(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	var req models.UpdateWatchlistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	item, err := h.svc.Update(c.Context(), middleware.UserID(c), movieID, req)
	if err != nil {
		return fail(c, err, "failed to update watchlist item")
	}
	return c.JSON(item)
}

// Remove deletes a movie from the caller's watchlist.
func (h *WatchlistHandler) Remove(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movieId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.svc.Remove(c.Context(), middleware.UserID(c), movieID); err != nil {
		return fail(c, err, "failed to remove from watchlist")
	}
	return c.JSON(fiber.Map{"message": "removed from watchlist"})
}
