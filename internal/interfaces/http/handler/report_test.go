package handler

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	appreport "github.com/chatu326/Stationary-Manager/internal/application/report"
	domainledger "github.com/chatu326/Stationary-Manager/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct{}

func (fakeRenderer) RenderMonthlyReport(*appreport.MonthlyReport) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

func newReportTestEngine() (*gin.Engine, *fakeItemRepo, *fakeEntryRepo) {
	itemRepo := newFakeItemRepo()
	entryRepo := newFakeEntryRepo()
	reportService := appreport.NewReportService(itemRepo, entryRepo, fakeRenderer{})
	return newTestEngine(NewReportHandler(reportService)), itemRepo, entryRepo
}

func appendEntry(t *testing.T, entryRepo *fakeEntryRepo, itemID uint, quantity int) {
	t.Helper()
	entry, err := domainledger.NewEntry(itemID, quantity, "alice")
	require.NoError(t, err)
	require.NoError(t, entryRepo.Append(context.Background(), entry))
}

func TestReportHandler_MonthlyUsage(t *testing.T) {
	t.Run("sums decreases in the current month", func(t *testing.T) {
		engine, itemRepo, entryRepo := newReportTestEngine()
		item := seedItem(t, itemRepo, 100)
		appendEntry(t, entryRepo, item.ID, -30)
		appendEntry(t, entryRepo, item.ID, -12)
		appendEntry(t, entryRepo, item.ID, 50)

		entries, err := entryRepo.FindByItem(context.Background(), item.ID)
		require.NoError(t, err)
		year, month := entries[0].EntryDate.Year(), int(entries[0].EntryDate.Month())

		w := get(engine, "/api/v1/reports/usage?year="+strconv.Itoa(year)+"&month="+strconv.Itoa(month))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w)["data"].(map[string]any)
		assert.Equal(t, float64(42), data["total_used"])
	})

	t.Run("rejects an invalid month", func(t *testing.T) {
		engine, _, _ := newReportTestEngine()

		w := get(engine, "/api/v1/reports/usage?year=2026&month=13")

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_VALIDATION", errorCode(t, w))
	})

	t.Run("rejects missing parameters", func(t *testing.T) {
		engine, _, _ := newReportTestEngine()

		w := get(engine, "/api/v1/reports/usage")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_StockValue(t *testing.T) {
	engine, itemRepo, _ := newReportTestEngine()
	seedItem(t, itemRepo, 10) // 10 * 4.50

	w := get(engine, "/api/v1/reports/stock-value")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, "45", data["total_value"])
}

func TestReportHandler_Monthly(t *testing.T) {
	engine, itemRepo, entryRepo := newReportTestEngine()
	item := seedItem(t, itemRepo, 3) // below threshold 10
	appendEntry(t, entryRepo, item.ID, -2)
	entries, err := entryRepo.FindByItem(context.Background(), item.ID)
	require.NoError(t, err)
	year, month := entries[0].EntryDate.Year(), int(entries[0].EntryDate.Month())

	w := get(engine, "/api/v1/reports/monthly?year="+strconv.Itoa(year)+"&month="+strconv.Itoa(month))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total_used"])
	lowStock := data["low_stock"].([]any)
	require.Len(t, lowStock, 1)
}

func TestReportHandler_MonthlyPDF(t *testing.T) {
	engine, _, _ := newReportTestEngine()

	w := get(engine, "/api/v1/reports/monthly/pdf?year=2026&month=3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "stationery-report-2026-03.pdf")
	assert.Equal(t, "%PDF", string(w.Body.Bytes()[:4]))
}
