package repositories

import "context"

// TxFunc is the unit of work run by TransactionManager.WithinTx. The repository
// it receives is bound to the transaction and must not escape fn.
type TxFunc func(ctx context.Context, repo LedgerRepository) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn atomically: every write made through repo is persisted
	// if fn returns nil, and none of them are if fn returns an error.
	WithinTx(ctx context.Context, fn TxFunc) error
}
