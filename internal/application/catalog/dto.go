package catalog

import (
	"time"

	"github.com/chatu326/Stationary-Manager/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents the request to add a new item to the catalog
type CreateItemRequest struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Shelf            int             `json:"shelf" binding:"required,min=1"`
	Row              int             `json:"row" binding:"required,min=1"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	InitialStock     int             `json:"initial_stock" binding:"min=0"`
	ReorderThreshold int             `json:"reorder_threshold" binding:"min=0"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Shelf            int             `json:"shelf"`
	Row              int             `json:"row"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Stock            int             `json:"stock"`
	ReorderThreshold int             `json:"reorder_threshold"`
	LowStock         bool            `json:"low_stock"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ItemCodeResponse carries an item's identifier code image
type ItemCodeResponse struct {
	ItemID uint   `json:"item_id"`
	PNG    []byte `json:"-"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Shelf:            item.Shelf,
		Row:              item.Row,
		UnitPrice:        item.UnitPrice,
		Stock:            item.Stock,
		ReorderThreshold: item.ReorderThreshold,
		LowStock:         item.IsLowStock(),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain items to response DTOs
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses
}
