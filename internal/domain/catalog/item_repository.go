package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// ItemRepository defines the persistence interface for catalog items.
// Items are never deleted; the cached stock column is only ever changed
// through AdjustStock so that the change can share a transaction with the
// matching ledger entry.
type ItemRepository interface {
	// Create persists a new item and assigns its identifier.
	Create(ctx context.Context, item *Item) error

	// FindByID finds an item by its identifier. Returns shared.ErrNotFound if
	// the item does not exist.
	FindByID(ctx context.Context, id uint) (*Item, error)

	// FindAll returns all items in insertion order (ascending id).
	FindAll(ctx context.Context) ([]Item, error)

	// FindLowStock returns items whose stock is below their reorder threshold,
	// ascending by id.
	FindLowStock(ctx context.Context) ([]Item, error)

	// AdjustStock applies a signed delta to the item's cached stock as a single
	// in-database increment. Returns shared.ErrNotFound if the item does not
	// exist.
	AdjustStock(ctx context.Context, id uint, delta int) error

	// TotalStockValue returns the sum of stock * unit_price over all items.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)

	// Count returns the number of catalog items.
	Count(ctx context.Context) (int64, error)
}
