package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/middleware"
	"github.com/pageza/nutrilens/backend/internal/service"
)

// HealthCheckFunc probes one dependency.
type HealthCheckFunc func(ctx context.Context) error

// Services bundles what the routes need. MealLimiter, LoginLimit and Checks
// are optional.
type Services struct {
	Auth        service.IAuthService
	Profiles    service.IProfileService
	Onboarding  service.IOnboardingService
	Meals       service.IMealService
	Dashboard   service.IDashboardService
	MealLimiter *middleware.RateLimiter
	LoginLimit  gin.HandlerFunc
	Checks      map[string]HealthCheckFunc
}

// HealthCheck reports whether every dependency answers within two seconds.
func HealthCheck(checks map[string]HealthCheckFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":  state,
			"message": "Nutrilens API is running",
			"checks":  results,
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(svc.Checks))

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck(svc.Checks))
	NewAuthHandler(svc.Auth, svc.Profiles, svc.LoginLimit).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	NewOnboardingHandler(svc.Onboarding).RegisterRoutes(protected)
	NewProfileHandler(svc.Onboarding).RegisterRoutes(protected)
	NewMealHandler(svc.Meals, svc.MealLimiter).RegisterRoutes(protected)
	NewDashboardHandler(svc.Dashboard).RegisterRoutes(protected)
}
