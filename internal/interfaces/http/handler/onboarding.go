package handler

import (
	"github.com/gin-gonic/gin"
	appOnboarding "github.com/meditrack/backend/internal/application/onboarding"
	"go.uber.org/zap"
)

// OnboardingHandler handles demo data seeding endpoints
type OnboardingHandler struct {
	BaseHandler
	service *appOnboarding.SeedService
	logger  *zap.Logger
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(service *appOnboarding.SeedService, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{service: service, logger: logger}
}

// RegisterRoutes registers onboarding routes
func (h *OnboardingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	onboarding := rg.Group("/onboarding")
	{
		onboarding.GET("/status", h.Status)
		onboarding.POST("/seed", h.Seed)
		onboarding.DELETE("/seed", h.Clear)
	}
}

// Status reports whether onboarding has been completed
func (h *OnboardingHandler) Status(c *gin.Context) {
	h.Success(c, gin.H{"completed": h.service.Completed(c.Request.Context())})
}

// Seed populates the database with demo data
func (h *OnboardingHandler) Seed(c *gin.Context) {
	summary, err := h.service.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Clear removes all seeded records and resets the completed flag
func (h *OnboardingHandler) Clear(c *gin.Context) {
	summary, err := h.service.Clear(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
