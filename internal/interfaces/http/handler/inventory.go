package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	appCatalog "github.com/meditrack/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// InventoryHandler handles inventory item and stock endpoints
type InventoryHandler struct {
	BaseHandler
	service *appCatalog.InventoryService
	logger  *zap.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *appCatalog.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: service, logger: logger}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.POST("", h.Create)
		inventory.GET("/low-stock", h.LowStock)
		inventory.GET("/out-of-stock", h.OutOfStock)
		inventory.GET("/statistics", h.Statistics)
		inventory.GET("/barcode/:code", h.GetByBarcode)
		inventory.GET("/:id", h.Get)
		inventory.PUT("/:id", h.Update)
		inventory.DELETE("/:id", h.Delete)
		inventory.POST("/:id/restore", h.Restore)
		inventory.PUT("/:id/stock", h.UpdateStock)
		inventory.POST("/:id/stock/adjust", h.AdjustStock)
		inventory.GET("/:id/stock/history", h.StockHistory)
		inventory.GET("/:id/stock/statistics", h.StockStatistics)
		inventory.GET("/:id/price/history", h.PriceHistory)
		inventory.POST("/:id/barcodes", h.AddBarcode)
		inventory.DELETE("/:id/barcodes/:code", h.RemoveBarcode)
		inventory.PUT("/:id/barcodes/:code/primary", h.SetPrimaryBarcode)
	}
}

// List returns a page of inventory items
func (h *InventoryHandler) List(c *gin.Context) {
	var query appCatalog.ListInventoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Create creates a new inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req appCatalog.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// LowStock returns items at or below their minimum stock level
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// OutOfStock returns items with zero quantity
func (h *InventoryHandler) OutOfStock(c *gin.Context) {
	items, err := h.service.OutOfStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Statistics returns aggregate inventory counts and stock value
func (h *InventoryHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// GetByBarcode returns the item carrying a barcode
func (h *InventoryHandler) GetByBarcode(c *gin.Context) {
	resp, err := h.service.GetByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one item by ID
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update to an item
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appCatalog.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes an item
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore brings back a soft-deleted item
func (h *InventoryHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateStock sets an absolute stock quantity
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appCatalog.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustStock applies a signed stock delta
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appCatalog.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StockHistory returns stock movements for an item, newest first
func (h *InventoryHandler) StockHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	entries, err := h.service.StockHistory(c.Request.Context(), id, limitQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// StockStatistics returns movement statistics for an item
func (h *InventoryHandler) StockStatistics(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	stats, err := h.service.StockStatistics(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// PriceHistory returns price changes for an item, newest first
func (h *InventoryHandler) PriceHistory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	entries, err := h.service.PriceHistory(c.Request.Context(), id, limitQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// AddBarcode attaches a barcode to an item
func (h *InventoryHandler) AddBarcode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appCatalog.BarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.AddBarcode(c.Request.Context(), id, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveBarcode detaches a barcode from an item
func (h *InventoryHandler) RemoveBarcode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.service.RemoveBarcode(c.Request.Context(), id, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetPrimaryBarcode marks a barcode as the item's primary one
func (h *InventoryHandler) SetPrimaryBarcode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.service.SetPrimaryBarcode(c.Request.Context(), id, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// limitQuery parses the optional limit query parameter; 0 means all
func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
