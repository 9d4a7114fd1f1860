package handlers

import (
	"fmt"

	"github.com/ganpathioverseas/erp_finance/cmd/docs"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/middleware"
	"github.com/ganpathioverseas/erp_finance/internal/observability"
	"github.com/ganpathioverseas/erp_finance/internal/platform/analytics"
	"github.com/ganpathioverseas/erp_finance/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDependencies are the optional cross-cutting pieces the routes are wrapped with.
// Any of them may be nil.
type RouteDependencies struct {
	Metrics   *observability.Metrics
	Limiter   *limiter.Limiter
	Analytics *analytics.Client
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDependencies,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("failed to register request validators: %w", err)
	}

	// Add health check route
	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg, deps.Limiter)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDependencies,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if deps.Limiter != nil {
		v1.Use(middleware.RateLimit(deps.Limiter))
	}
	v1.Use(middleware.PosthogMiddleware(deps.Analytics))

	// Delegate route registration to specific handlers, passing required services
	registerFinanceRoutes(v1, service.Reporting)
	registerReportRoutes(v1, service.Reporting, deps.Analytics)
	registerAccountRoutes(v1, service.Account)
	registerLedgerRoutes(v1, service.Ledger)
	registerUserRoleRoutes(v1, service.Roles)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config, lim *limiter.Limiter) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	if lim != nil {
		swagger.Use(middleware.GinMiddlewarize(lim))
	}
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
