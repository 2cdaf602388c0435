package handler

import (
	"github.com/gin-gonic/gin"
	appSettings "github.com/meditrack/backend/internal/application/settings"
	"go.uber.org/zap"
)

// SettingsHandler handles application settings endpoints
type SettingsHandler struct {
	BaseHandler
	service         *appSettings.Service
	enableDevRoutes bool
	logger          *zap.Logger
}

// NewSettingsHandler creates a new settings handler. Reset endpoints
// are only mounted when dev routes are enabled.
func NewSettingsHandler(service *appSettings.Service, enableDevRoutes bool, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, enableDevRoutes: enableDevRoutes, logger: logger}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.All)
		settings.PUT("", h.SetMultiple)
		settings.GET("/category/:category", h.ByCategory)
		settings.GET("/:key", h.Get)
		settings.PUT("/:key", h.Set)

		if h.enableDevRoutes {
			settings.DELETE("/category/:category", h.ResetCategory)
			settings.DELETE("/:key", h.Reset)
		}
	}
}

// All returns every setting definition with its effective value
func (h *SettingsHandler) All(c *gin.Context) {
	result, err := h.service.All(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ByCategory returns the settings in one category
func (h *SettingsHandler) ByCategory(c *gin.Context) {
	result, err := h.service.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns one setting by key
func (h *SettingsHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Set updates one setting value
func (h *SettingsHandler) Set(c *gin.Context) {
	var req appSettings.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Set(c.Request.Context(), c.Param("key"), req.Value, actorName(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SetMultiple updates several settings atomically
func (h *SettingsHandler) SetMultiple(c *gin.Context) {
	var req appSettings.SetMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetMultiple(c.Request.Context(), req.Values, actorName(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reset restores one setting to its default value
func (h *SettingsHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context(), c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ResetCategory restores all settings in a category to their defaults
func (h *SettingsHandler) ResetCategory(c *gin.Context) {
	if err := h.service.ResetCategory(c.Request.Context(), c.Param("category")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
