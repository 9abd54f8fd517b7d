package ledger

import (
	"context"
	"time"
)

// EntryRepository defines the persistence interface for ledger entries.
// The ledger is append-only: there is no update or delete.
type EntryRepository interface {
	// Append persists a new entry and assigns its transaction identifier.
	Append(ctx context.Context, entry *Entry) error

	// FindByItem returns all entries for an item, oldest first.
	FindByItem(ctx context.Context, itemID uint) ([]Entry, error)

	// SumDecreasedBetween sums the quantities of DECREASE entries whose entry
	// date falls in [from, to).
	SumDecreasedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// Count returns the total number of ledger entries.
	Count(ctx context.Context) (int64, error)
}
