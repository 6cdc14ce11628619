package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SscSPs/atk_inventory_app/cmd/docs"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	"github.com/SscSPs/atk_inventory_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// HealthChecker reports whether a dependency is reachable. *pgxpool.Pool satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
	db HealthChecker,
) {
	r.GET("/health", healthHandler(db))

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Auth))
	registerAuthRoutes(r, v1, middleware.RateLimit(loginLimiter), services.Auth, services.Directory)
	setupAPIV1Routes(v1, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes delegates to the per-resource registrations. Every route here is authenticated.
func setupAPIV1Routes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerRequestRoutes(v1, services.Request, services.Approval)
	registerItemRoutes(v1, services.Item)
	registerEventRoutes(v1, services.Events)

	admin := v1.Group("", middleware.RequireRole(domain.RoleAdmin))
	registerQuotaRoutes(admin, services.Quota)
	registerMovementRoutes(admin, services.Journal)
	registerDirectoryRoutes(admin, services.Directory)
}

func healthHandler(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.String(http.StatusOK, "OK")
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "OK")
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
