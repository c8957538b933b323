package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// AnalyticsHandler handles HTTP requests for viewing statistics.
type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Dashboard returns the caller's full stats overview.
func (h *AnalyticsHandler) Dashboard(c fiber.Ctx) error {
	stats, err := h.svc.Dashboard(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to compute dashboard stats")
	}
	return c.JSON(stats)
}

// Genres returns the caller's genre distribution.
func (h *AnalyticsHandler) Genres(c fiber.Ctx) error {
	dist, err := h.svc.Genres(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to compute genre distribution")
	}
	return c.JSON(dist)
}

// Monthly returns per-month rating stats.
func (h *AnalyticsHandler) Monthly(c fiber.Ctx) error {
	months := fiber.Query(c, "months", 12)

	stats, err := h.svc.Monthly(c.Context(), middleware.UserID(c), months)
	if err != nil {
		return fail(c, err, "failed to compute monthly stats")
	}
	return c.JSON(stats)
}
