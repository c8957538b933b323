package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/models"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
)

// FriendHandler handles HTTP requests for friendships and the social feed.
type FriendHandler struct {
	svc *service.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(svc *service.FriendService) *FriendHandler {
	return &FriendHandler{svc: svc}
}

// Request sends a friend request.
func (h *FriendHandler) Request(c fiber.Ctx) error {
	var input models.FriendRequestInput
	if err := c.Bind().JSON(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	rel, err := h.svc.Request(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return fail(c, err, "failed to send friend request")
	}
	return c.Status(fiber.StatusCreated).JSON(rel)
}

// List returns the caller's accepted friends with taste compatibility.
func (h *FriendHandler) List(c fiber.Ctx) error {
	friends, err := h.svc.Friends(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to retrieve friends")
	}
	return c.JSON(friends)
}

// Accept approves an incoming friend request.
func (h *FriendHandler) Accept(c fiber.Ctx) error {
	requestID, err := strconv.Atoi(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request ID"})
	}

	rel, err := h.svc.Accept(c.Context(), middleware.UserID(c), requestID)
	if err != nil {
		return fail(c, err, "failed to accept friend request")
	}
	return c.JSON(rel)
}

// Pending returns incoming friend requests awaiting the caller's decision.
func (h *FriendHandler) Pending(c fiber.Ctx) error {
	requests, err := h.svc.Pending(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to retrieve pending requests")
	}
	return c.JSON(requests)
}

// Remove ends a friendship.
func (h *FriendHandler) Remove(c fiber.Ctx) error {
	friendID, err := strconv.Atoi(c.Params("friendId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid friend ID"})
	}

	if err := h.svc.Remove(c.Context(), middleware.UserID(c), friendID); err != nil {
		return fail(c, err, "failed to remove friend")
	}
	return c.JSON(fiber.Map{"message": "friend removed"})
}

// Activity returns the merged recent activity of the caller's friends.
func (h *FriendHandler) Activity(c fiber.Ctx) error {
	feed, err := h.svc.Activity(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err, "failed to retrieve activity feed")
	}
	return c.JSON(feed)
}

// CommonMovies returns the movies both the caller and a friend have rated.
func (h *FriendHandler) CommonMovies(c fiber.Ctx) error {
	friendID, err := strconv.Atoi(c.Params("friendId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid friend ID"})
	}

	movies, err := h.svc.CommonMovies(c.Context(), middleware.UserID(c), friendID)
	if err != nil {
		return fail(c, err, "failed to retrieve common movies")
	}
	return c.JSON(movies)
}
