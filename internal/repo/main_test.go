package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/sandwichproject/host-locator/migrations"
	"github.com/sandwichproject/host-locator/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies all pending migrations to the test database so individual tests
// never need to think about schema state.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// No test DB configured — skip all tests in this package cleanly.
		os.Exit(m.Run())
	}

	// Use a plain *sql.DB for goose (it needs database/sql, not pgx pool).
	// We construct it manually here rather than through testutil.NewPool
	// because TestMain doesn't have a *testing.T to pass.
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: create goose provider: %v", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// newTestTx opens a transaction against the test database that is rolled back
// automatically when the test finishes, giving free per-test isolation.
// All repos under test in this package are constructed on top of it.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}
