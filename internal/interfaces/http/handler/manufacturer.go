package handler

import (
	"github.com/gin-gonic/gin"
	appCatalog "github.com/meditrack/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// ManufacturerHandler handles manufacturer and medicine form endpoints
type ManufacturerHandler struct {
	BaseHandler
	manufacturers *appCatalog.ManufacturerService
	forms         *appCatalog.FormService
	logger        *zap.Logger
}

// NewManufacturerHandler creates a new manufacturer handler
func NewManufacturerHandler(manufacturers *appCatalog.ManufacturerService, forms *appCatalog.FormService, logger *zap.Logger) *ManufacturerHandler {
	return &ManufacturerHandler{manufacturers: manufacturers, forms: forms, logger: logger}
}

// RegisterRoutes registers manufacturer and form routes
func (h *ManufacturerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manufacturers := rg.Group("/manufacturers")
	{
		manufacturers.GET("", h.List)
		manufacturers.POST("", h.Create)
		manufacturers.GET("/:id", h.Get)
		manufacturers.PUT("/:id", h.Update)
		manufacturers.DELETE("/:id", h.Delete)
		manufacturers.DELETE("/:id/permanent", h.Purge)
		manufacturers.POST("/:id/restore", h.Restore)
	}

	forms := rg.Group("/forms")
	{
		forms.GET("", h.ListForms)
		forms.POST("", h.CreateForm)
		forms.DELETE("/:id", h.DeactivateForm)
	}
}

type listManufacturersQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
}

// List returns a page of manufacturers
func (h *ManufacturerHandler) List(c *gin.Context) {
	var query listManufacturersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.manufacturers.List(c.Request.Context(), query.Page, query.PageSize, query.Search, query.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Create creates a new manufacturer
func (h *ManufacturerHandler) Create(c *gin.Context) {
	var req appCatalog.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.manufacturers.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one manufacturer by ID
func (h *ManufacturerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid manufacturer ID")
		return
	}

	resp, err := h.manufacturers.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update to a manufacturer
func (h *ManufacturerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid manufacturer ID")
		return
	}

	var req appCatalog.UpdateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.manufacturers.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deactivates a manufacturer
func (h *ManufacturerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid manufacturer ID")
		return
	}

	if err := h.manufacturers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore reactivates a deactivated manufacturer
func (h *ManufacturerHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid manufacturer ID")
		return
	}

	if err := h.manufacturers.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Purge permanently removes a manufacturer
func (h *ManufacturerHandler) Purge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid manufacturer ID")
		return
	}

	if err := h.manufacturers.Purge(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListForms returns medicine forms, active only by default
func (h *ManufacturerHandler) ListForms(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	forms, err := h.forms.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, forms)
}

type createFormRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateForm adds a medicine form, reactivating it if it was deactivated
func (h *ManufacturerHandler) CreateForm(c *gin.Context) {
	var req createFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.forms.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// DeactivateForm hides a medicine form from pickers without deleting it
func (h *ManufacturerHandler) DeactivateForm(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid form ID")
		return
	}

	if err := h.forms.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
