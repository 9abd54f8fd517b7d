package handler

import (
	"fmt"
	"net/http"

	"github.com/chatu326/Stationary-Manager/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers reporting routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/usage", h.MonthlyUsage)
		reports.GET("/stock-value", h.StockValue)
		reports.GET("/monthly", h.Monthly)
		reports.GET("/monthly/pdf", h.MonthlyPDF)
	}
}

// MonthlyUsage returns the total quantity of stock used in a calendar month
func (h *ReportHandler) MonthlyUsage(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		h.BadRequest(c, "year and month query parameters are required")
		return
	}

	result, err := h.reportService.MonthlyUsage(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StockValue returns the current value of all stock on hand
func (h *ReportHandler) StockValue(c *gin.Context) {
	result, err := h.reportService.CurrentStockValue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Monthly returns the full monthly report as JSON
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		h.BadRequest(c, "year and month query parameters are required")
		return
	}

	result, err := h.reportService.Monthly(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MonthlyPDF returns the monthly report as a downloadable PDF document
func (h *ReportHandler) MonthlyPDF(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		h.BadRequest(c, "year and month query parameters are required")
		return
	}

	pdf, err := h.reportService.MonthlyPDF(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("stationery-report-%04d-%02d.pdf", year, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
