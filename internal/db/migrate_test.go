package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Re-running must tolerate existing tables and ALTER TABLE columns.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"estimator_profiles", "estimates", "blockers", "estimate_events", "carriers"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_estimates_estimator",
		"idx_estimates_status",
		"idx_estimates_file_number",
		"idx_blockers_estimate",
		"idx_blockers_one_active",
		"idx_events_estimate",
		"idx_events_created",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_StatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO estimator_profiles (id, user_id, display_name, created_at, updated_at)
		VALUES ('p1', 'u1', 'Test', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO estimates (id, file_number, estimator_id, status, date_received, created_at, updated_at)
		VALUES ('e1', 'CLM-1', 'p1', 'bogus-status', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint")
}

func TestMigrate_SettlementVarianceColumn(t *testing.T) {
	db := openTestDB(t)

	// Added via ALTER TABLE after the initial schema.
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('estimates') WHERE name = 'settlement_variance'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
