package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	registerHomeRoutes(r)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User, services.Profile)
	registerFamilyRoutes(v1, services.Family, services.User)
	registerHouseholdRoutes(v1, services.Household, services.User)
	registerCategoryRoutes(v1, services.Category, services.User)
	registerOrderRoutes(v1, services.Order, services.User)
	registerDebtRoutes(v1, services.Debt, services.User)
	registerReportingRoutes(v1, services.Reporting, services.User)
	registerHistoryRoutes(v1, services.History, services.User)
	registerEventRoutes(v1, services.ChangeFeed, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerCustomValidators teaches gin's binding validator the famrole tag
// used on role fields.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("famrole", func(fl validator.FieldLevel) bool {
			return domain.FamilyRole(fl.Field().String()).IsValid()
		})
	}
}
