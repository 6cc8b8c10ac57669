package handlers

import (
	"alumbrado/internal/logger"
	"alumbrado/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live dataset-summary feed, served on the same port via HTTP upgrade.
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerImportRoutes(api)
		h.registerDataRoutes(api)
	}
}

func (h *Handler) registerImportRoutes(api *gin.RouterGroup) {
	imports := api.Group("/imports")
	{
		imports.POST("/failures", h.importFailures)
		imports.POST("/changes", h.importChanges)
		imports.POST("/inventory", h.importInventory)
		imports.POST("/backup", h.importBackup)
	}
}

func (h *Handler) registerDataRoutes(api *gin.RouterGroup) {
	api.GET("/events", h.getEvents)
	api.GET("/changes", h.getChanges)
	api.GET("/inventory", h.getInventory)
	api.GET("/files", h.getFiles)
	api.DELETE("/files/:name", h.deleteFile)
	api.GET("/backup", h.exportBackup)
	api.POST("/reset", h.resetStore)
}
