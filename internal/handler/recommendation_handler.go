package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// RecommendationHandler handles HTTP requests for the recommendation engine.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// TasteMatch returns the compatibility score between the caller and a friend.
func (h *RecommendationHandler) TasteMatch(c fiber.Ctx) error {
	friendID, err := strconv.Atoi(c.Params("friendId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid friend ID"})
	}

	match, err := h.svc.TasteMatch(c.Context(), middleware.UserID(c), friendID)
	if err != nil {
		return fail(c, err, "failed to compute taste match")
	}
	return c.JSON(match)
}

// Personal returns ranked recommendations for the caller.
func (h *RecommendationHandler) Personal(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 0)

	recs, err := h.svc.Personal(c.Context(), middleware.UserID(c), limit)
	if err != nil {
		return fail(c, err, "failed to compute recommendations")
	}
	return c.JSON(recs)
}

// Joint returns watch-together recommendations for the caller and a friend.
func (h *RecommendationHandler) Joint(c fiber.Ctx) error {
	friendID, err := strconv.Atoi(c.Params("friendId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid friend ID"})
	}

	recs, err := h.svc.Joint(c.Context(), middleware.UserID(c), friendID)
	if err != nil {
		return fail(c, err, "failed to compute joint recommendations")
	}
	return c.JSON(recs)
}

// FromFriends returns recommendations sourced from the caller's friends.
func (h *RecommendationHandler) FromFriends(c fiber.Ctx) error {
	recs, err := h.svc.FromFriends(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to compute friend recommendations")
	}
	return c.JSON(recs)
}
