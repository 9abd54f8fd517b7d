package integration

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/chatu326/Stationary-Manager/internal/infrastructure/migration"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_UpDownRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate_test.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	m, err := migration.New(db, "sqlite", findMigrationsPath(t), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.Up())

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	// The core tables exist and accept writes
	_, err = db.Exec(`INSERT INTO items (name, shelf, "row", unit_price, stock, reorder_threshold)
		VALUES ('Stapler', 1, 1, 12.50, 5, 2)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO ledger_entries (item_id, entry_date, quantity, direction, actor)
		VALUES (1, date('now'), 5, 'INCREASE', 'setup')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO credentials (username, password_hash) VALUES ('alice', 'x')`)
	require.NoError(t, err)

	require.NoError(t, m.Down())

	var count int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'items'`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
