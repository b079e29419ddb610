package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/application/service"
	"github.com/sangkips/yardops-api/internal/config"
	"github.com/sangkips/yardops-api/internal/infrastructure/database"
	"github.com/sangkips/yardops-api/internal/infrastructure/repository"
	"github.com/sangkips/yardops-api/internal/presentation/http/handler"
	"github.com/sangkips/yardops-api/internal/presentation/http/middleware"
	"github.com/sangkips/yardops-api/internal/presentation/http/routes"
	"github.com/sangkips/yardops-api/pkg/logger"
	"github.com/sangkips/yardops-api/pkg/utils"
	"go.uber.org/zap"
)

const cleanupInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Reach the yard database through SSH when configured
	var tunnel *database.Tunnel
	if cfg.SSH.Enabled {
		tunnel = database.NewTunnel(&cfg.SSH, zlog)
		defer tunnel.Close()
		zlog.Info("database traffic tunnelled over ssh", zap.String("ssh_host", cfg.SSH.Host))
	}

	db, err := database.NewPostgresDB(&cfg.Database, &cfg.Log, tunnel)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, zlog); err != nil {
			zlog.Fatal("failed to run migrations", zap.Error(err))
		}
		if err := database.SeedDefaultData(db, zlog); err != nil {
			zlog.Warn("failed to seed default data", zap.Error(err))
		}
	}

	provider := database.NewPoolProvider(db)
	loc := cfg.App.Location()
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.SessionExpiry)

	// Initialize repositories
	statsRepo := repository.NewStatsRepository(provider)
	orderStore := repository.NewOrderFileStore(cfg.Stats.OrderFile, zlog)
	userRepo := repository.NewUserRepository(provider)
	sessionRepo := repository.NewSessionRepository(provider)
	vehicleRepo := repository.NewVehicleRepository(provider)
	actionLogRepo := repository.NewActionLogRepository(provider)
	idempotencyRepo := repository.NewIdempotencyRepository(provider)
	catalogRepo := repository.NewCatalogFileRepository(cfg.Catalog.File, zlog)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionRepo, jwtManager, zlog)
	statsService := service.NewStatsService(statsRepo, sessionRepo, orderStore, loc, zlog)
	vehicleService := service.NewVehicleService(vehicleRepo, actionLogRepo, cfg.Crush.LocationID, zlog)
	actionLogService := service.NewActionLogService(actionLogRepo, loc)
	exportService := service.NewExportService(loc)
	partsService := service.NewPartsFinderService(catalogRepo, zlog)

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService, handler.CookieConfig{Name: cfg.JWT.CookieName, Secure: cfg.JWT.CookieSecure}),
		Stats:   handler.NewStatsHandler(statsService, exportService),
		Vehicle: handler.NewVehicleHandler(vehicleService, actionLogService, exportService),
		Parts:   handler.NewPartsHandler(partsService, exportService),
	}

	rateLimiter := middleware.NewUserRateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.Duration)*time.Second)
	defer rateLimiter.Close()

	router := routes.Setup(handlers, &routes.Deps{
		Authenticator:   authService,
		RateLimiter:     rateLimiter,
		IdempotencyRepo: idempotencyRepo,
		Cfg:             cfg,
		Logger:          zlog,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go purgeExpired(ctx, authService, idempotencyRepo.DeleteExpired, zlog)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("timezone", loc.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// purgeExpired drops ended sessions and stale idempotency keys until ctx is done
func purgeExpired(ctx context.Context, auth *service.AuthService, purgeKeys func(context.Context) error, log *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.PurgeExpiredSessions(ctx); err != nil {
				log.Warn("failed to purge expired sessions", zap.Error(err))
			}
			if err := purgeKeys(ctx); err != nil {
				log.Warn("failed to purge idempotency keys", zap.Error(err))
			}
		}
	}
}
