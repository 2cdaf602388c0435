package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	version string
	logger  *zap.Logger
}

// NewSystemHandler creates a new system handler. db may be nil when the
// server runs without a relational database.
func NewSystemHandler(db Pinger, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{db: db, version: version, logger: logger}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service and database status
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "disabled"

	if h.db != nil {
		dbStatus = "ok"
		if err := h.db.Ping(); err != nil {
			h.logger.Warn("database health check failed", zap.Error(err))
			status = "degraded"
			dbStatus = "unreachable"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
	})
}
