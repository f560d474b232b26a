package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	registryapp "github.com/nestline/backend/internal/application/registry"
	"github.com/nestline/backend/internal/domain/feed"
	"github.com/nestline/backend/internal/domain/registry"
	"github.com/nestline/backend/internal/infrastructure/auth"
	"github.com/nestline/backend/internal/infrastructure/config"
	"github.com/nestline/backend/internal/infrastructure/event"
	"github.com/nestline/backend/internal/infrastructure/feeds"
	"github.com/nestline/backend/internal/infrastructure/lock"
	"github.com/nestline/backend/internal/infrastructure/logger"
	"github.com/nestline/backend/internal/infrastructure/persistence"
	"github.com/nestline/backend/internal/interfaces/http/handler"
	"github.com/nestline/backend/internal/interfaces/http/middleware"
	"github.com/nestline/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Nestline registry backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection; GORM logs through zap at a level
	// derived from the configured log level
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	connRepo := persistence.NewGormConnectionRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)

	// Sync lock: Redis when available so concurrent replicas serialize
	// per (member, source); in-memory otherwise
	var locker registryapp.SyncLocker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		locker = lock.NewRedisSyncLocker(redisClient, cfg.Feeds.SyncLockTTL)
		log.Info("Redis sync locking enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		locker = lock.NewInMemorySyncLocker(cfg.Feeds.SyncLockTTL)
	}

	// Feed adapters: the curated catalog ships with the binary, the live
	// feeds poll retailer endpoints and fall back to the catalog when an
	// upstream is down, and the linked-account adapters pull a member's
	// external registry using their stored connection.
	catalogAdapter, err := feeds.NewStaticCatalogAdapter()
	if err != nil {
		log.Fatal("Failed to load curated catalog", zap.Error(err))
	}

	targetAdapter, err := feeds.NewLiveFeedAdapter(registry.SourceTarget, cfg.Feeds.Target, catalogAdapter, log)
	if err != nil {
		log.Fatal("Failed to initialize target feed adapter", zap.Error(err))
	}
	defer targetAdapter.Close()

	amazonAdapter, err := feeds.NewLiveFeedAdapter(registry.SourceAmazon, cfg.Feeds.Amazon, catalogAdapter, log)
	if err != nil {
		log.Fatal("Failed to initialize amazon feed adapter", zap.Error(err))
	}
	defer amazonAdapter.Close()

	babylistAdapter, err := feeds.NewLinkedAccountAdapter(registry.SourceBabylist, cfg.Feeds.Babylist, connRepo, log)
	if err != nil {
		log.Fatal("Failed to initialize babylist adapter", zap.Error(err))
	}

	myRegistryAdapter, err := feeds.NewLinkedAccountAdapter(registry.SourceMyRegistry, cfg.Feeds.MyRegistry, connRepo, log)
	if err != nil {
		log.Fatal("Failed to initialize myregistry adapter", zap.Error(err))
	}

	adapters := []feed.Adapter{
		catalogAdapter,
		targetAdapter,
		amazonAdapter,
		babylistAdapter,
		myRegistryAdapter,
	}

	// Initialize event bus; domain events are logged for audit
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	itemService := registryapp.NewItemService(itemRepo, eventBus)
	catalogService := registryapp.NewCatalogService(adapters)
	syncService := registryapp.NewSyncService(itemRepo, connRepo, adapters, locker, eventBus, log)
	noteService := registryapp.NewNoteService(noteRepo, itemRepo)

	// Member auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	itemHandler := handler.NewItemHandler(itemService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	syncHandler := handler.NewSyncHandler(syncService)
	noteHandler := handler.NewNoteHandler(noteService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report JSON field names in validation errors
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// JWT authentication for everything except the health endpoints
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/ready",
		},
		Logger: log,
	}))

	// Register routes under /api/v1
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(itemHandler).
		Register(catalogHandler).
		Register(syncHandler).
		Register(noteHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
