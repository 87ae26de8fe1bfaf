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

	"github.com/absolutekim/FFYYPP/internal/config"
	"github.com/absolutekim/FFYYPP/internal/database"
	"github.com/absolutekim/FFYYPP/internal/flight"
	"github.com/absolutekim/FFYYPP/internal/handler"
	"github.com/absolutekim/FFYYPP/internal/middleware"
	"github.com/absolutekim/FFYYPP/internal/nlp"
	"github.com/absolutekim/FFYYPP/internal/recommend"
	"github.com/absolutekim/FFYYPP/internal/repository"
	"github.com/absolutekim/FFYYPP/internal/search"
	"github.com/absolutekim/FFYYPP/internal/service"
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

	// NLP processor. Without an inference URL it runs in heuristic mode.
	var inferenceClient *nlp.InferenceClient
	if cfg.InferenceURL != "" {
		inferenceClient = nlp.NewInferenceClient(cfg.InferenceURL, cfg.InferenceTimeout)
	} else {
		slog.Warn("no inference URL configured, using heuristic NLP mode")
	}
	processor := nlp.NewProcessor(inferenceClient)

	searchEngine := search.NewEngine(processor)
	recEngine := recommend.NewEngine(searchEngine)
	flightClient := flight.NewClient(cfg.FlightAPIHost, cfg.FlightAPIKey)

	// Initialize layers
	destRepo := repository.NewDestinationRepository(db)
	userRepo := repository.NewUserRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	plannerRepo := repository.NewPlannerRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	destSvc := service.NewDestinationService(destRepo, userRepo, processor, searchEngine, recEngine, rdb)
	communitySvc := service.NewCommunityService(communityRepo)
	plannerSvc := service.NewPlannerService(plannerRepo, destRepo)

	authH := handler.NewAuthHandler(authSvc)
	destH := handler.NewDestinationHandler(destSvc)
	communityH := handler.NewCommunityHandler(communitySvc)
	plannerH := handler.NewPlannerHandler(plannerSvc)
	flightH := handler.NewFlightHandler(flightClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Travel Service",
		ServerHeader: "Travel-Service",
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
	app.Use(middleware.NewRateLimiter(rdb, 100, 60).Handler())

	// API routes
	handler.RegisterRoutes(app,
		middleware.JWTAuth(cfg.JWTSecret),
		authH, destH, communityH, plannerH, flightH,
	)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down travel service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting travel service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
