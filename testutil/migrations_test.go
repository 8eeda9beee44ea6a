package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/migrations"
	"github.com/tanchoice/livestock/backend/testutil"
)

// schemaTables are the tables the embedded migrations create, in creation
// order.
var schemaTables = []string{"suppliers", "trips", "trip_animals"}

// TestMigrations drives the embedded migrations through a full round-trip
// against a real Postgres database: reset to version 0, apply everything,
// check the schema, roll everything back, and check again. It is skipped
// when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may already have migrated this shared test
	// DB. Reset first so the test passes regardless of run order.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to run")

	for _, table := range schemaTables {
		assert.True(t, tableExists(t, db, table), "table %q should exist after up", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range schemaTables {
		assert.False(t, tableExists(t, db, table), "table %q should be gone after down", table)
	}
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	return exists
}
