package handler

import (
	"github.com/gin-gonic/gin"
	appDashboard "github.com/meditrack/backend/internal/application/dashboard"
	"go.uber.org/zap"
)

// DashboardHandler handles the aggregated start screen endpoints
type DashboardHandler struct {
	BaseHandler
	service *appDashboard.Service
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *appDashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.Summary)
		dashboard.GET("/active-orders", h.ActiveOrders)
	}
}

// Summary returns the aggregate statistics for the start screen
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ActiveOrders returns the in-memory active order working set,
// optionally filtered by supplier
func (h *DashboardHandler) ActiveOrders(c *gin.Context) {
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		h.Success(c, h.service.ActiveOrdersForSupplier(supplierID))
		return
	}
	h.Success(c, h.service.ActiveOrders())
}
