package ledger

import (
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/ledger"
)

// AdjustStockRequest represents a signed stock adjustment for an item.
// Positive quantities add stock, negative quantities remove it.
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	TransID   uint      `json:"trans_id"`
	ItemID    uint      `json:"item_id"`
	EntryDate time.Time `json:"entry_date"`
	Quantity  int       `json:"quantity"`
	Direction string    `json:"direction"`
	Actor     string    `json:"actor"`
}

// AdjustmentResponse reports the outcome of a stock adjustment
type AdjustmentResponse struct {
	Entry    EntryResponse `json:"entry"`
	NewStock int           `json:"new_stock"`
	LowStock bool          `json:"low_stock"`
}

// ToEntryResponse converts a domain entry to a response DTO
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		TransID:   e.TransID,
		ItemID:    e.ItemID,
		EntryDate: e.EntryDate,
		Quantity:  e.Quantity,
		Direction: string(e.Direction),
		Actor:     e.Actor,
	}
}

// ToEntryResponses converts a slice of domain entries to response DTOs
func ToEntryResponses(entries []ledger.Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i]))
	}
	return responses
}
