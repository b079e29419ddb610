package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yardops-api/internal/config"
	domainRepo "github.com/sangkips/yardops-api/internal/domain/repository"
	"github.com/sangkips/yardops-api/internal/presentation/http/handler"
	"github.com/sangkips/yardops-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Stats   *handler.StatsHandler
	Vehicle *handler.VehicleHandler
	Parts   *handler.PartsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Authenticator   middleware.SessionAuthenticator
	RateLimiter     *middleware.UserRateLimiter
	IdempotencyRepo domainRepo.IdempotencyRepository
	Cfg             *config.Config
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Authenticator, deps.Cfg.JWT.CookieName))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
	}

	rg.GET("/dashboard/stats", h.Stats.Dashboard)

	stats := rg.Group("/stats")
	{
		stats.GET("", h.Stats.Stats)
		stats.GET("/export", h.Stats.Export)
		stats.GET("/order", h.Stats.GetOrder)
		stats.POST("/order", h.Stats.SaveOrder)
		stats.POST("/exclusions", h.Stats.SaveExclusions)
		stats.GET("/monthly", h.Stats.Monthly)
		stats.GET("/daily", h.Stats.Daily)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("/search", h.Vehicle.Search)
		crush := vehicles.Group("")
		if deps.IdempotencyRepo != nil {
			crush.Use(middleware.Idempotency(deps.IdempotencyRepo, deps.Logger))
		}
		crush.POST("/:id/crush", h.Vehicle.Crush)
	}

	parts := rg.Group("/parts")
	{
		parts.GET("/search", h.Parts.Search)
		parts.GET("/export", h.Parts.Export)
		parts.GET("/models", h.Parts.Models)
	}

	logs := rg.Group("/logs")
	{
		logs.GET("", h.Vehicle.ListLogs)
		logs.GET("/export", h.Vehicle.ExportLogs)
	}
}
