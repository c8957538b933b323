package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/tobiasreicht/film-tracker-backend/internal/config"
	"github.com/tobiasreicht/film-tracker-backend/internal/database"
	"github.com/tobiasreicht/film-tracker-backend/internal/handler"
	"github.com/tobiasreicht/film-tracker-backend/internal/middleware"
	"github.com/tobiasreicht/film-tracker-backend/internal/repository"
	"github.com/tobiasreicht/film-tracker-backend/internal/service"
	"github.com/tobiasreicht/film-tracker-backend/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Initialize TMDB client
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)

	// Repositories
	users := repository.NewUserRepository(db)
	movies := repository.NewMovieRepository(db)
	ratings := repository.NewRatingRepository(db)
	watchlist := repository.NewWatchlistRepository(db)
	friends := repository.NewFriendRepository(db)

	// Services
	authSvc := service.NewAuthService(users, cfg.JWT)
	movieSvc := service.NewMovieService(movies, tmdbClient, rdb)
	ratingSvc := service.NewRatingService(ratings, movies)
	watchlistSvc := service.NewWatchlistService(watchlist, movies)
	friendSvc := service.NewFriendService(friends, users, ratings, watchlist, movies)
	recSvc := service.NewRecommendationService(users, ratings, watchlist, movies, friends)
	analyticsSvc := service.NewAnalyticsService(ratings, watchlist, friends)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(movieSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	friendH := handler.NewFriendHandler(friendSvc)
	recH := handler.NewRecommendationHandler(recSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Film Tracker Backend",
		ServerHeader: "Film-Tracker",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.NewRateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds).Handler())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "film-tracker-backend"})
	})

	// Public routes
	api := app.Group("/api/v1")
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)

	// Authenticated routes
	auth := api.Group("", middleware.RequireAuth(cfg.JWT.Secret))
	auth.Get("/auth/me", authH.Me)

	auth.Get("/movies", movieH.List)
	auth.Get("/movies/:id", movieH.Detail)
	auth.Post("/admin/sync", movieH.Sync)

	auth.Post("/ratings", ratingH.Rate)
	auth.Get("/ratings", ratingH.List)
	auth.Get("/ratings/favorites", ratingH.Favorites)
	auth.Delete("/ratings/:movieId", ratingH.Delete)

	auth.Post("/watchlist", watchlistH.Add)
	auth.Get("/watchlist", watchlistH.List)
	auth.Patch("/watchlist/:movieId", watchlistH.Update)
	auth.Delete("/watchlist/:movieId", watchlistH.Remove)

	auth.Post("/friends", friendH.Request)
	auth.Get("/friends", friendH.List)
	auth.Get("/friends/requests", friendH.Pending)
	auth.Put("/friends/:requestId/accept", friendH.Accept)
	auth.Delete("/friends/:friendId", friendH.Remove)
	auth.Get("/friends/activity", friendH.Activity)
	auth.Get("/friends/common/:friendId", friendH.CommonMovies)

	auth.Get("/recommendations/personal", recH.Personal)
	auth.Get("/recommendations/friends", recH.FromFriends)
	auth.Get("/recommendations/joint/:friendId", recH.Joint)
	auth.Get("/recommendations/taste-match/:friendId", recH.TasteMatch)

	auth.Get("/analytics/dashboard", analyticsH.Dashboard)
	auth.Get("/analytics/genres", analyticsH.Genres)
	auth.Get("/analytics/monthly", analyticsH.Monthly)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down film tracker backend...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting film tracker backend", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
