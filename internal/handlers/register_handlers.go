package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/goldvault/goldvault/internal/core/ports/services"
	"github.com/goldvault/goldvault/internal/middleware"
	"github.com/goldvault/goldvault/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	readers DeviceReaders,
) {
	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, readers)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	readers DeviceReaders,
) {
	v1 := r.Group("/api/v1", rateLimitMiddleware(cfg))

	registerCustomerRoutes(v1, services.Customer)
	registerLedgerRoutes(v1, services.Ledger)
	registerInventoryRoutes(v1, services.Inventory)
	registerDeviceRoutes(v1, readers)
}

// rateLimitMiddleware builds an in-memory per-IP limiter from config, e.g. "300-M".
func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("300-M")
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}
