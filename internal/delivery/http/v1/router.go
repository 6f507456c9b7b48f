package v1

import (
	"time"

	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/delivery/http/middleware"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsRelease())) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// JSON endpoints
	endpoints := api.Group("", middleware.SecurityHeadersMiddleware(cfg.IsRelease(), middleware.APIContentSecurityPolicy))
	NewHealthHandler(endpoints, deps.HealthUC)

	limiter := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
		cfg.ContactRateLimit,
		time.Duration(cfg.ContactRateWindowSeconds)*time.Second,
		cfg.ContactRateLimitFailClosed,
	))
	NewContactHandler(endpoints, deps.ContactUC, limiter)

	// Swagger UI renders in the browser and needs scripts/styles
	docs := api.Group("/swagger", middleware.SecurityHeadersMiddleware(cfg.IsRelease(), middleware.DocsContentSecurityPolicy))
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
