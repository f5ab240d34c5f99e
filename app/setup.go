package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/campusmatch/college-discovery-api/api"
	"github.com/campusmatch/college-discovery-api/config"
	"github.com/campusmatch/college-discovery-api/database"
	"github.com/campusmatch/college-discovery-api/router"
	"github.com/campusmatch/college-discovery-api/services/cron"
	"github.com/campusmatch/college-discovery-api/services/discovery"
	"github.com/campusmatch/college-discovery-api/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		print("Failed to initialize catalog tables\n")
		return err
	}

	// Pick the catalog reader implementation for the engine
	var catalog database.CatalogReader
	var pqCatalog *database.PQCatalog
	if getEnv.CATALOG_DRIVER == "pq" {
		pqCatalog, err = database.StartPQ()
		if err != nil {
			return err
		}
		defer pqCatalog.Close()
		catalog = pqCatalog
	} else {
		catalog = database.NewGORMCatalog(store.GetDB())
	}

	// Redis is optional: discovery degrades to direct catalog reads when
	// the cache is down
	var redisCache *cache.RedisCache
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err = cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Reference caching will be in-process only.", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// Build the matching engine
	settings := config.GetEngineSettings()
	refs := discovery.NewReferenceCache(catalog, redisCache, settings.ReferenceCacheTTL)
	engine := discovery.NewEngine(catalog, refs, settings)

	// Prime the reference cache; a failure here is not fatal, the first
	// request will retry the load
	if err := refs.Warm(context.Background()); err != nil {
		log.Println("Warning: failed to warm reference cache:", err)
	}

	// Scheduled cache warming (enabled by default)
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager := cron.NewCronManager(refs)
		if err := cronManager.Start(); err != nil {
			log.Println("Warning: failed to start cron jobs:", err)
		} else {
			defer cronManager.Stop()
		}
	}

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Deps{
		Store:      store,
		Engine:     engine,
		RedisCache: redisCache,
		AdminKey:   getEnv.ADMIN_API_KEY,
	})

	// Get the PORT & Start the Server
	return server.Run()
}
