package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/HSouheill/lifelessons_backend/config"
	"github.com/HSouheill/lifelessons_backend/controllers"
	"github.com/HSouheill/lifelessons_backend/metrics"
	"github.com/HSouheill/lifelessons_backend/middleware"
	"github.com/HSouheill/lifelessons_backend/repositories"
	"github.com/HSouheill/lifelessons_backend/routes"
	"github.com/HSouheill/lifelessons_backend/services"
	"github.com/HSouheill/lifelessons_backend/utils"
	"github.com/HSouheill/lifelessons_backend/websocket"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	client, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Errorw("mongo disconnect failed", "error", err)
		}
	}()
	db := client.Database(cfg.DBName)
	config.SetupCollections(ctx, db, logger)

	redisClient := config.ConnectRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	verifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("identity verifier: %w", err)
	}
	verifier = services.NewCachedVerifier(verifier, redisClient, logger)

	checkout, err := services.NewCheckoutProvider(cfg)
	if err != nil {
		return fmt.Errorf("checkout provider: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Initialize repositories
	lessonRepo := repositories.NewLessonRepository(db)
	contributorRepo := repositories.NewContributorRepository(db)
	policy := services.NewLessonPolicy(cfg.IsAdmin)

	allowedOrigins := middleware.NewCORSConfig(cfg.ClientURL, cfg.CORSAllowedOrigins).AllowOrigins
	handlers := routes.Handlers{
		Lessons:        controllers.NewLessonController(lessonRepo, contributorRepo, policy, hub, logger, cfg.RequestTimeout),
		Comments:       controllers.NewCommentController(lessonRepo, hub, logger, cfg.RequestTimeout),
		Contributors:   controllers.NewContributorController(contributorRepo, policy, logger, cfg.RequestTimeout),
		Checkout:       controllers.NewCheckoutController(checkout, cfg, logger),
		Health:         controllers.NewHealthController(client, logger),
		Hub:            hub,
		AllowedOrigins: allowedOrigins,
	}

	e, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	routes.SetupRoutes(e, handlers, middleware.RequireAuth(verifier, logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer creates the Echo instance with the global middleware chain
func newServer(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ipExtractor, err := middleware.NewIPExtractor(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	e.IPExtractor = ipExtractor
	e.Validator = utils.NewValidator()
	e.HTTPErrorHandler = middleware.HTTPErrorHandler(logger)

	e.Server.ReadHeaderTimeout = 10 * time.Second
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = cfg.RequestTimeout + 5*time.Second
	e.Server.IdleTimeout = 120 * time.Second

	rateLimiter := middleware.NewRateLimiter(ctx)

	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.GlobalCORS(cfg.ClientURL, cfg.CORSAllowedOrigins))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echoMiddleware.BodyLimit("1M"))
	e.Use(middleware.RequireJSON())
	e.Use(rateLimiter.RateLimit())

	return e, nil
}

// newVerifier builds the identity verifier named by AUTH_PROVIDER
func newVerifier(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (services.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case "jwt":
		if cfg.IsProduction() {
			logger.Warn("AUTH_PROVIDER=jwt in production; tokens are verified with a shared secret")
		}
		return services.NewJWTVerifier(cfg.JWTSecret)
	case "firebase", "":
		app, err := config.InitFirebase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase auth client: %w", err)
		}
		return services.NewFirebaseVerifier(authClient), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}
}
