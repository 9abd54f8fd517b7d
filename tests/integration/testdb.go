// Package integration exercises the full stack against a real database:
// migrations applied by the same runner the server uses, gorm repositories,
// application services, and the HTTP layer on top.
package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	catalogapp "github.com/chatu326/Stationary-Manager/internal/application/catalog"
	identityapp "github.com/chatu326/Stationary-Manager/internal/application/identity"
	ledgerapp "github.com/chatu326/Stationary-Manager/internal/application/ledger"
	reportapp "github.com/chatu326/Stationary-Manager/internal/application/report"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/auth"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/config"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/migration"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/pdf"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/persistence"
	"github.com/chatu326/Stationary-Manager/internal/infrastructure/qrcode"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/handler"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/middleware"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var setupOnce sync.Once

// NewTestDB opens a fresh sqlite database in a temp directory and applies
// all migrations. The connection is closed when the test finishes.
func NewTestDB(t *testing.T) *persistence.Database {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stationery_test.db")
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   path,
	})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	m, err := migration.New(sqlDB, "sqlite", findMigrationsPath(t), zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// findMigrationsPath locates the migrations directory relative to this file
func findMigrationsPath(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "Failed to locate caller")

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "migrations")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Dir(dir)
	}

	t.Fatal("Could not find migrations directory")
	return ""
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "integration-test-secret-with-32-chars!!",
		RefreshSecret:          "integration-refresh-secret-with-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "stationery-manager-test",
	}
}

// newTestServer wires the complete application over the given database the
// same way cmd/server does, including JWT authentication on the API group.
func newTestServer(t *testing.T, db *persistence.Database) *gin.Engine {
	t.Helper()

	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		middleware.SetupValidator()
	})

	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	jwtService := auth.NewJWTService(testJWTConfig())
	authService := identityapp.NewAuthService(credentialRepo, jwtService)
	codec := qrcode.NewCodec()
	itemService := catalogapp.NewItemService(itemRepo, txScope, codec)
	ledgerService := ledgerapp.NewLedgerService(txScope, itemRepo, entryRepo, codec)
	reportService := reportapp.NewReportService(itemRepo, entryRepo, pdf.NewReportRenderer())

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService)))
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewStockHandler(ledgerService)).
		Register(handler.NewReportHandler(reportService))
	r.Setup()

	return engine
}
