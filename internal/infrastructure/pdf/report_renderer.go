package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/chatu326/Stationary-Manager/internal/application/report"
)

// ReportRenderer renders monthly reports as PDF documents
type ReportRenderer struct{}

// NewReportRenderer creates a new ReportRenderer
func NewReportRenderer() *ReportRenderer {
	return &ReportRenderer{}
}

// RenderMonthlyReport renders the report as a single-page A4 PDF
func (r *ReportRenderer) RenderMonthlyReport(rep *report.MonthlyReport) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	monthName := time.Month(rep.Month).String()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, "Stationery Inventory Report", "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("%s %d", monthName, rep.Year), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("Items used this month: %d", rep.TotalUsed), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Current stock value: %s", rep.StockValue.StringFixed(2)), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, "Items below reorder threshold", "", 1, "L", false, 0, "")

	if len(rep.LowStock) == 0 {
		doc.SetFont("Arial", "I", 11)
		doc.CellFormat(0, 7, "None", "", 1, "L", false, 0, "")
	} else {
		r.lowStockTable(doc, rep)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ReportRenderer) lowStockTable(doc *gofpdf.Fpdf, rep *report.MonthlyReport) {
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(15, 7, "ID", "1", 0, "C", true, 0, "")
	doc.CellFormat(75, 7, "Name", "1", 0, "L", true, 0, "")
	doc.CellFormat(30, 7, "Location", "1", 0, "C", true, 0, "")
	doc.CellFormat(25, 7, "Stock", "1", 0, "R", true, 0, "")
	doc.CellFormat(25, 7, "Threshold", "1", 1, "R", true, 0, "")

	doc.SetFont("Arial", "", 10)
	for _, item := range rep.LowStock {
		doc.CellFormat(15, 7, fmt.Sprintf("%d", item.ID), "1", 0, "C", false, 0, "")
		doc.CellFormat(75, 7, item.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("S%d/R%d", item.Shelf, item.Row), "1", 0, "C", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%d", item.Stock), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%d", item.ReorderThreshold), "1", 1, "R", false, 0, "")
	}
}

// Ensure ReportRenderer implements report.Renderer
var _ report.Renderer = (*ReportRenderer)(nil)
