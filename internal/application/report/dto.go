package report

import (
	"github.com/chatu326/Stationary-Manager/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// MonthlyUsageResponse reports the total quantity removed from stock during
// one calendar month.
type MonthlyUsageResponse struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	TotalUsed int64 `json:"total_used"`
}

// StockValueResponse reports the current value of all stock on hand
type StockValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}

// MonthlyReport aggregates the month's usage, the live stock value and the
// items currently below their reorder thresholds.
type MonthlyReport struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	TotalUsed  int64                  `json:"total_used"`
	StockValue decimal.Decimal        `json:"stock_value"`
	LowStock   []catalog.ItemResponse `json:"low_stock"`
}
