package repositories

// LedgerRepository groups the three collections of the inventory ledger.
type LedgerRepository interface {
	MedicineRepositoryFacade
	StockEntryRepositoryFacade
	SaleRepositoryFacade
}

// LedgerStore is a LedgerRepository that can also run multi-collection transactions.
// Every storage adapter (memory, sqlite, postgres) implements it.
type LedgerStore interface {
	LedgerRepository
	TransactionManager
}
