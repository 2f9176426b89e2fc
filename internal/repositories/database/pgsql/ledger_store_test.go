package pgsql_test

import (
	"context"
	"os"
	"testing"

	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/medinventory_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/medinventory_app/internal/repositories/storetest"
	"github.com/SscSPs/medinventory_app/pkg/database"
	"github.com/stretchr/testify/require"
)

// Set PGSQL_TEST_URL to a disposable database to run these tests.
func TestLedgerStore_Contract(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	ctx := context.Background()

	require.NoError(t, database.MigratePostgres(url))
	pool, err := database.NewPgxPool(ctx, url, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })

	storetest.Run(t, func(t *testing.T) portsrepo.LedgerStore {
		_, err := pool.Exec(ctx, `TRUNCATE medicines, stock_entries, sales RESTART IDENTITY`)
		require.NoError(t, err)
		return pgsql.NewLedgerStore(pool)
	})
}
