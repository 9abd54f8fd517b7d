package ledger

import (
	"strings"
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
)

// Direction indicates whether a ledger entry adds to or removes from stock
type Direction string

const (
	DirectionIncrease Direction = "INCREASE"
	DirectionDecrease Direction = "DECREASE"
)

const maxActorLength = 100

// Entry is an immutable record of one stock movement. Entries are only ever
// appended; corrections are made with compensating entries, never edits.
type Entry struct {
	TransID   uint      `gorm:"primaryKey;column:trans_id"`
	ItemID    uint      `gorm:"not null;index"`
	EntryDate time.Time `gorm:"type:date;not null;index"`
	Quantity  int       `gorm:"not null"` // Always positive; sign lives in Direction
	Direction Direction `gorm:"type:varchar(10);not null"`
	Actor     string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a ledger entry from a signed quantity: positive adds stock,
// negative removes it. A zero quantity is rejected because it would record a
// movement that moved nothing.
func NewEntry(itemID uint, signedQuantity int, actor string) (*Entry, error) {
	if itemID == 0 {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item identifier is required")
	}
	if signedQuantity == 0 {
		return nil, shared.ErrValidation
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor username is required")
	}
	if len(actor) > maxActorLength {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor username cannot exceed 100 characters")
	}

	direction := DirectionIncrease
	quantity := signedQuantity
	if signedQuantity < 0 {
		direction = DirectionDecrease
		quantity = -signedQuantity
	}

	return &Entry{
		ItemID:    itemID,
		EntryDate: truncateToDate(time.Now()),
		Quantity:  quantity,
		Direction: direction,
		Actor:     actor,
	}, nil
}

// SignedQuantity returns the entry's stock delta: positive for increases,
// negative for decreases.
func (e *Entry) SignedQuantity() int {
	if e.Direction == DirectionDecrease {
		return -e.Quantity
	}
	return e.Quantity
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
