package handler

import (
	"io"
	"strconv"

	"github.com/chatu326/Stationary-Manager/internal/application/ledger"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// StockHandler handles stock movement HTTP requests
type StockHandler struct {
	BaseHandler
	ledgerService *ledger.LedgerService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(ledgerService *ledger.LedgerService) *StockHandler {
	return &StockHandler{
		ledgerService: ledgerService,
	}
}

// RegisterRoutes registers stock movement routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("/:id/stock", h.Adjust)
		items.GET("/:id/ledger", h.History)
	}
	stock := rg.Group("/stock")
	{
		stock.POST("/scan", h.AdjustByCode)
	}
}

// Adjust applies a signed stock adjustment to an item. Positive quantities
// add stock, negative quantities remove it.
func (h *StockHandler) Adjust(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req ledger.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	actor := middleware.GetJWTUsername(c)
	result, err := h.ledgerService.Adjust(c.Request.Context(), id, req.Quantity, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AdjustByCode applies a stock adjustment to the item identified by a
// scanned code image. The request is multipart form data with an "image"
// file and a "quantity" field.
func (h *StockHandler) AdjustByCode(c *gin.Context) {
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing quantity")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Missing image file")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Failed to read image file")
		return
	}

	actor := middleware.GetJWTUsername(c)
	result, err := h.ledgerService.AdjustByCode(c.Request.Context(), image, quantity, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// History returns an item's full ledger history, oldest first
func (h *StockHandler) History(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.ledgerService.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
