package ledger

import (
	"context"

	"github.com/chatu326/Stationary-Manager/internal/domain/catalog"
	"github.com/chatu326/Stationary-Manager/internal/domain/ledger"
)

// TransactionScope provides transactional access to the item and ledger
// repositories. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically. This is what keeps an item's cached stock and its
// ledger history consistent with each other.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. Both repositories share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the catalog item repository scoped to the current transaction
	ItemRepo() catalog.ItemRepository
	// EntryRepo returns the ledger entry repository scoped to the current transaction
	EntryRepo() ledger.EntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with fake repositories.
type NoOpTransactionScope struct {
	itemRepo  catalog.ItemRepository
	entryRepo ledger.EntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(itemRepo catalog.ItemRepository, entryRepo ledger.EntryRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:  itemRepo,
		entryRepo: entryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the catalog item repository.
func (s *NoOpTransactionScope) ItemRepo() catalog.ItemRepository {
	return s.itemRepo
}

// EntryRepo returns the ledger entry repository.
func (s *NoOpTransactionScope) EntryRepo() ledger.EntryRepository {
	return s.entryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
