package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cse-dept/cms-api/api"
	"github.com/cse-dept/cms-api/config"
	"github.com/cse-dept/cms-api/database"
	"github.com/cse-dept/cms-api/router"
	"github.com/cse-dept/cms-api/services/cron"
	"github.com/cse-dept/cms-api/services/reporting"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/utils/cache"
)

// Version is set at build time with -ldflags "-X .../app.Version=..."
var Version = "dev"

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}
	if err := getEnv.Validate(); err != nil {
		return err
	}

	reporter := reporting.New(reporting.Config{
		Token:       getEnv.ROLLBAR_TOKEN,
		Environment: getEnv.GO_ENV,
		CodeVersion: Version,
	})
	defer reporter.Close()

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		print("Check whether the database is running and DB_* settings are correct\n")
		print("  DB_DRIVER=", getEnv.DB_DRIVER, " DB_HOST=", getEnv.DB_HOST, " DB_PORT=", getEnv.DB_PORT, "\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	ctx := context.Background()

	// Redis is optional
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL, "cms")
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Continuing without it.", err)
			redisCache = nil
		}
	}

	files, err := storage.New(ctx, getEnv)
	if err != nil {
		return fmt.Errorf("file storage: %w", err)
	}
	log.Printf("File storage: %s", files.Name())

	var indexer search.Indexer = search.NewDBIndexer(store.GetDB())
	if getEnv.MEILI_URL != "" {
		indexer = search.NewMeiliIndexer(getEnv.MEILI_URL, getEnv.MEILI_API_KEY)
	}
	log.Printf("Search backend: %s", indexer.Name())

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.GetDB(), indexer)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer closing everything that holds a connection
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			_ = redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv, reporter)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		Store:   store,
		Env:     getEnv,
		Files:   files,
		Indexer: indexer,
		Cache:   redisCache,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down API Server")
		done := make(chan struct{})
		go func() {
			if err := server.Shutdown(); err != nil {
				log.Printf("shutdown: %v", err)
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(15 * time.Second):
			log.Println("Shutdown timed out")
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
