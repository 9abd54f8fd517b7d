package catalog

import (
	"strings"
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const maxItemNameLength = 200

// Item represents a stationery item tracked in the catalog.
// Its cached Stock field is mutated only through ledger adjustments and is
// kept consistent with the item's ledger history inside a single transaction.
type Item struct {
	shared.BaseEntity
	Name             string          `gorm:"type:varchar(200);not null"`
	Shelf            int             `gorm:"not null"`
	Row              int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock            int             `gorm:"not null;default:0"` // Cached net of the item's ledger entries
	ReorderThreshold int             `gorm:"not null;default:10"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item with the given initial stock.
// The identifier is assigned by the store on first save.
func NewItem(name string, shelf, row int, unitPrice decimal.Decimal, initialStock, reorderThreshold int) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > maxItemNameLength {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	if shelf < 1 {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Shelf number must be at least 1")
	}
	if row < 1 {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Row number must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Initial stock cannot be negative")
	}
	if reorderThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Reorder threshold cannot be negative")
	}

	return &Item{
		Name:             name,
		Shelf:            shelf,
		Row:              row,
		UnitPrice:        unitPrice,
		Stock:            initialStock,
		ReorderThreshold: reorderThreshold,
	}, nil
}

// IsLowStock returns true if the cached stock is below the reorder threshold
func (i *Item) IsLowStock() bool {
	return i.Stock < i.ReorderThreshold
}

// StockValue returns the value of the item's current stock (stock * unit price).
// Negative stock yields a negative value; the store places no floor on stock.
func (i *Item) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Stock)))
}

// Touch updates the modification timestamp
func (i *Item) Touch() {
	i.UpdatedAt = time.Now()
}
