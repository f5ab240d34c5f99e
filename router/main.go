package router

import (
	"os"
	"time"

	"github.com/campusmatch/college-discovery-api/database"
	college_handlers "github.com/campusmatch/college-discovery-api/handlers/college"
	discovery_handlers "github.com/campusmatch/college-discovery-api/handlers/discovery"
	reference_handlers "github.com/campusmatch/college-discovery-api/handlers/reference"
	"github.com/campusmatch/college-discovery-api/services/discovery"
	"github.com/campusmatch/college-discovery-api/utils/cache"
	"github.com/campusmatch/college-discovery-api/utils/middleware"
	"github.com/campusmatch/college-discovery-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// Deps carries everything the routes need; app/setup.go builds it
type Deps struct {
	Store      *database.GORMStore
	Engine     *discovery.Engine
	RedisCache *cache.RedisCache // nil when redis is unavailable
	AdminKey   string
}

// SetupRoutes wires middleware and all API routes
func SetupRoutes(app *fiber.App, deps Deps) {
	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 120,
		RateLimitWindow:   time.Minute,
	})

	// Initialize handlers
	discoveryHandler := discovery_handlers.NewDiscoveryHandler(deps.Engine)
	collegeHandler := college_handlers.NewCollegeHandler(deps.Store.GetDB())
	referenceHandler := reference_handlers.NewReferenceHandler(deps.Engine.References())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		health := fiber.Map{"database": "ok", "cache": "ok"}

		if err := deps.Store.HealthCheck(); err != nil {
			health["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(health)
		}
		if deps.RedisCache == nil {
			health["cache"] = "disabled"
		} else if err := deps.RedisCache.Ping(c.Context()); err != nil {
			health["cache"] = "unreachable"
		}

		return c.JSON(health)
	})

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Discovery
	v1.Post("/discover", discoveryHandler.Discover)

	// Catalog browsing
	v1.Get("/colleges", collegeHandler.ListColleges)
	v1.Get("/colleges/:id", collegeHandler.GetCollege)

	// Reference lists (served from the TTL cache)
	v1.Get("/streams", referenceHandler.ListStreams)
	v1.Get("/interests", referenceHandler.ListInterests)

	// Operator endpoints
	admin := v1.Group("/admin", middleware.AdminKey(deps.AdminKey))
	admin.Post("/cache/bust", discoveryHandler.BustCache)

	// 404 for everything else
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}
