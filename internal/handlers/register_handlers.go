package handlers

import (
	"net/http"

	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/middleware"
	"github.com/choretrack/chore_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := registerAuthRoutes(r, cfg, services); err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, services)
	return nil
}

// registerAuthRoutes mounts the public endpoints behind an in-memory IP
// rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	rate, err := limiter.NewRateFromFormatted(cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	h := newAuthHandler(services.User, services.Auth)
	auth := r.Group("/auth", middleware.RateLimit(limiterInstance))
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerLedgerRoutes(v1, services.Ledger)
	registerCompletionRoutes(v1, services.Completion)
	registerStreakRoutes(v1, services.Streak)
	registerTaskRoutes(v1, services.Task)
	registerRoutineRoutes(v1, services.Routine)
	registerUserRoutes(v1, services.User)
}
