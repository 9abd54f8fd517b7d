package report

import (
	"context"
	"time"

	appcatalog "github.com/chatu326/Stationary-Manager/internal/application/catalog"
	"github.com/chatu326/Stationary-Manager/internal/domain/catalog"
	"github.com/chatu326/Stationary-Manager/internal/domain/ledger"
	"github.com/chatu326/Stationary-Manager/internal/domain/shared"
)

// Renderer renders a monthly report as a downloadable document
type Renderer interface {
	// RenderMonthlyReport renders the report as a PDF document
	RenderMonthlyReport(report *MonthlyReport) ([]byte, error)
}

// ReportService answers reporting queries. All figures are computed live from
// the current catalog and ledger; nothing is precomputed or cached.
type ReportService struct {
	itemRepo  catalog.ItemRepository
	entryRepo ledger.EntryRepository
	renderer  Renderer
}

// NewReportService creates a new ReportService
func NewReportService(itemRepo catalog.ItemRepository, entryRepo ledger.EntryRepository, renderer Renderer) *ReportService {
	return &ReportService{
		itemRepo:  itemRepo,
		entryRepo: entryRepo,
		renderer:  renderer,
	}
}

// MonthlyUsage sums the quantities of all stock decreases whose entry date
// falls in the given calendar month. Increases never offset the total.
func (s *ReportService) MonthlyUsage(ctx context.Context, year, month int) (*MonthlyUsageResponse, error) {
	from, to, err := monthBounds(year, month)
	if err != nil {
		return nil, err
	}

	total, err := s.entryRepo.SumDecreasedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &MonthlyUsageResponse{Year: year, Month: month, TotalUsed: total}, nil
}

// CurrentStockValue computes the live value of all stock on hand
func (s *ReportService) CurrentStockValue(ctx context.Context) (*StockValueResponse, error) {
	total, err := s.itemRepo.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}
	return &StockValueResponse{TotalValue: total}, nil
}

// Monthly builds the full monthly report
func (s *ReportService) Monthly(ctx context.Context, year, month int) (*MonthlyReport, error) {
	usage, err := s.MonthlyUsage(ctx, year, month)
	if err != nil {
		return nil, err
	}

	value, err := s.itemRepo.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.itemRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Year:       year,
		Month:      month,
		TotalUsed:  usage.TotalUsed,
		StockValue: value,
		LowStock:   appcatalog.ToItemResponses(lowStock),
	}, nil
}

// MonthlyPDF builds the monthly report and renders it as a PDF document
func (s *ReportService) MonthlyPDF(ctx context.Context, year, month int) ([]byte, error) {
	report, err := s.Monthly(ctx, year, month)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderMonthlyReport(report)
	if err != nil {
		return nil, shared.NewDomainError("REPORT_RENDER_ERROR", "Failed to render report document")
	}
	return pdf, nil
}

func monthBounds(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, shared.ErrValidation
	}
	if year < 1 {
		return time.Time{}, time.Time{}, shared.ErrValidation
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return from, to, nil
}
