package handlers

import (
	"icd_controller/internal/logger"
	"icd_controller/internal/service"

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

	// Minimal WebSocket connection (HTTP upgrade), same port
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
		h.registerICDRoutes(api)
		h.registerGeneratorRoutes(api)
		h.registerMonitorRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerICDRoutes(api *gin.RouterGroup) {
	device := api.Group("/icd")
	{
		device.POST("/on", h.icdOn)
		device.POST("/off", h.icdOff)
		// Body example: {"limit":120}
		device.POST("/tachy-limit", h.setTachyLimit)
		device.POST("/tick", h.tick)
		device.GET("/state", h.getState)
	}
}

func (h *Handler) registerGeneratorRoutes(api *gin.RouterGroup) {
	gen := api.Group("/generator")
	{
		gen.POST("/on", h.generatorOn)
		gen.POST("/off", h.generatorOff)
		// Body example: {"impulse":30}
		gen.POST("/impulse", h.generatorSetImpulse)
		gen.GET("/status", h.generatorStatus)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	mon := api.Group("/monitor")
	{
		mon.POST("/on", h.monitorOn)
		mon.POST("/off", h.monitorOff)
		mon.GET("/status", h.monitorStatus)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
