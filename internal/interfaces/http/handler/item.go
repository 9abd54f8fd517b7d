package handler

import (
	"net/http"

	"github.com/chatu326/Stationary-Manager/internal/application/catalog"
	"github.com/chatu326/Stationary-Manager/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles catalog-related HTTP requests
type ItemHandler struct {
	BaseHandler
	itemService *catalog.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *catalog.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// RegisterRoutes registers catalog routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/low-stock", h.ListLowStock)
		items.GET("/:id", h.Get)
		items.GET("/:id/code", h.Code)
	}
}

// Create adds a new item to the catalog. When the item starts with stock,
// an opening ledger entry is recorded under the authenticated user.
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalog.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	actor := middleware.GetJWTUsername(c)
	result, err := h.itemService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns all catalog items
func (h *ItemHandler) List(c *gin.Context) {
	result, err := h.itemService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListLowStock returns items whose stock is below their reorder threshold
func (h *ItemHandler) ListLowStock(c *gin.Context) {
	result, err := h.itemService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a single catalog item
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Code returns the item's identifier code as a PNG image, ready to print
// and stick on the shelf
func (h *ItemHandler) Code(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.itemService.Code(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", result.PNG)
}
