package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/James1Law/vibe-test-carpenter-site/config"
	"github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/middleware"
	"github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/response"
	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  domain.HealthUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := deps.Config

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler(log))
	if cfg.RateLimitGlobalThreshold > 0 {
		r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, log)))
	}

	api := r.Group("/api")

	var contactLimiter gin.HandlerFunc
	if cfg.RateLimitContactThreshold > 0 {
		window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
		contactLimiter = middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window, log))
	}

	NewHealthHandler(api, deps.HealthUC)
	NewContactHandler(api, deps.ContactUC, contactLimiter)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found", nil)
	})

	return r
}
