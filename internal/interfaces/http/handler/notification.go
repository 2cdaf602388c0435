package handler

import (
	"github.com/gin-gonic/gin"
	appNotification "github.com/meditrack/backend/internal/application/notification"
	"go.uber.org/zap"
)

// NotificationHandler handles notification center endpoints
type NotificationHandler struct {
	BaseHandler
	center *appNotification.Center
	logger *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(center *appNotification.Center, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{center: center, logger: logger}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.DELETE("", h.Clear)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.Dismiss)
	}
}

// List returns notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.center.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// UnreadCount returns the number of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.center.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.center.MarkRead(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead marks every notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.center.MarkAllRead(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Dismiss removes one notification
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.center.Dismiss(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Clear removes all notifications
func (h *NotificationHandler) Clear(c *gin.Context) {
	if err := h.center.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
