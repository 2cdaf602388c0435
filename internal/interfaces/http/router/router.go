package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar mounts a set of routes on an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router assembles the versioned API from handler registrars
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
	logger     *zap.Logger
}

// New creates a router on the given engine
func New(engine *gin.Engine, logger *zap.Logger) *Router {
	return &Router{
		engine:     engine,
		apiVersion: "v1",
		logger:     logger,
	}
}

// Register adds registrars whose routes are mounted on Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registered handler under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	r.logger.Info("routes registered",
		zap.String("version", r.apiVersion),
		zap.Int("handlers", len(r.registrars)))
}
