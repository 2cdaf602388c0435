package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appOrder "github.com/meditrack/backend/internal/application/order"
	"go.uber.org/zap"
)

// StatusChanger applies an order status change through the dashboard
// working set so the change is visible there before the write lands
type StatusChanger interface {
	ChangeOrderStatus(ctx context.Context, id uuid.UUID, req appOrder.ChangeStatusRequest) (*appOrder.OrderResponse, error)
}

// OrderHandler handles special order endpoints
type OrderHandler struct {
	BaseHandler
	service  *appOrder.Service
	statuses StatusChanger
	logger   *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *appOrder.Service, statuses StatusChanger, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, statuses: statuses, logger: logger}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/search", h.Search)
		orders.GET("/active", h.Active)
		orders.GET("/statistics", h.Statistics)
		orders.GET("/number/:number", h.GetByNumber)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.PATCH("/:id/status", h.ChangeStatus)
		orders.DELETE("/:id", h.Delete)
	}
}

// List returns a page of orders, optionally filtered by status
func (h *OrderHandler) List(c *gin.Context) {
	var query appOrder.ListOrdersQuery
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

// Create creates a new special order
func (h *OrderHandler) Create(c *gin.Context) {
	var req appOrder.CreateOrderRequest
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

// Search finds orders by customer name, phone or item name
func (h *OrderHandler) Search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Active returns orders in the pending, ordered or arrived states
func (h *OrderHandler) Active(c *gin.Context) {
	results, err := h.service.Active(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Statistics returns order counts aggregated by status
func (h *OrderHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Get returns one order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber returns one order by its human-readable number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	resp, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update to an order
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appOrder.UpdateOrderRequest
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

// ChangeStatus moves an order to a new status
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appOrder.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.statuses.ChangeOrderStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete permanently removes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
