package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerStore is a LedgerStore backed by PostgreSQL.
type LedgerStore struct {
	BaseRepository
	ledgerRepository
}

// NewLedgerStore creates a store on an open pool of a migrated database.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{
		BaseRepository:   BaseRepository{Pool: pool},
		ledgerRepository: ledgerRepository{db: pool},
	}
}

var _ portsrepo.LedgerStore = (*LedgerStore)(nil)

// WithinTx implements portsrepo.TransactionManager. Medicines read inside fn
// are locked with SELECT ... FOR UPDATE until the transaction ends.
func (s *LedgerStore) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback(context.WithoutCancel(ctx), tx) // Will be ignored if transaction is committed successfully

	if err := fn(ctx, &ledgerRepository{db: tx, lockRows: true}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// ledgerRepository runs the ledger queries against the pool or an open transaction.
type ledgerRepository struct {
	db       dbtx
	lockRows bool
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)
