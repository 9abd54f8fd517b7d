package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/chatu326/Stationary-Manager/internal/application/catalog"
	identityapp "github.com/chatu326/Stationary-Manager/internal/application/identity"
	ledgerapp "github.com/chatu326/Stationary-Manager/internal/application/ledger"
	reportapp "github.com/chatu326/Stationary-Manager/internal/application/report"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/auth"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/config"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/logger"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/migration"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/pdf"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/persistence"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/qrcode"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/replication"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/handler"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/middleware"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
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

	log.Info("Starting stationery manager",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Set up the off-box mirror before opening the database so a fresh host
	// can restore the previous snapshot
	var mirror *replication.Mirror
	if cfg.Mirror.Enabled {
		store, err := replication.NewS3SnapshotStore(&cfg.Mirror, replication.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create mirror store", zap.Error(err))
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure mirror bucket", zap.Error(err))
		}
		mirror = replication.NewMirror(store, cfg.Database.Path, cfg.Mirror.Debounce, log)
		if cfg.Mirror.RestoreOnStart {
			if err := mirror.Restore(context.Background()); err != nil {
				log.Fatal("Failed to restore database from mirror", zap.Error(err))
			}
		}
		log.Info("Database mirroring enabled",
			zap.String("bucket", cfg.Mirror.Bucket),
			zap.Duration("debounce", cfg.Mirror.Debounce),
		)
	}

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Run pending migrations
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying database", zap.Error(err))
	}
	migrator, err := migration.New(sqlDB, cfg.Database.Driver, "migrations", log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Up(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(credentialRepo, jwtService)
	codec := qrcode.NewCodec()
	itemService := catalogapp.NewItemService(itemRepo, txScope, codec)
	ledgerService := ledgerapp.NewLedgerService(txScope, itemRepo, entryRepo, codec)
	reportService := reportapp.NewReportService(itemRepo, entryRepo, pdf.NewReportRenderer())

	// Start the mirror loop and hook it into the write paths
	var mirrorCancel context.CancelFunc
	if mirror != nil {
		var mirrorCtx context.Context
		mirrorCtx, mirrorCancel = context.WithCancel(context.Background())
		go mirror.Run(mirrorCtx)
		authService.SetChangeNotifier(mirror)
		itemService.SetChangeNotifier(mirror)
		ledgerService.SetChangeNotifier(mirror)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation failures using JSON field names
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodySizeLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning and authentication)
	engine.GET("/health", healthHandler(db))

	// API routes behind JWT authentication
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewStockHandler(ledgerService)).
		Register(handler.NewReportHandler(reportService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
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
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush any pending mirror upload before exiting
	if mirror != nil {
		mirrorCancel()
		mirror.Wait()
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the health check endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
