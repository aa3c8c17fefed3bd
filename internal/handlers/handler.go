package handlers

import (
	"net/http"

	"event_rsvp/internal/logger"
	"event_rsvp/internal/service"

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

	api := router.Group("/api")
	{
		h.registerRsvpRoutes(api)
		h.registerAdminRoutes(api)
	}

	// Live attendee list over WebSocket (HTTP upgrade on the same port).
	router.GET("/ws", h.wsAttendees)

	return router
}

// Public RSVP endpoints; ownership is enforced per request via the device key
// in the body, so there is no auth middleware here.
func (h *Handler) registerRsvpRoutes(api *gin.RouterGroup) {
	rsvps := api.Group("/rsvps")
	{
		rsvps.GET("", h.listRsvps)
		rsvps.POST("", h.createRsvp)
		rsvps.PUT("/:id", h.editRsvp)
		rsvps.DELETE("/:id", h.deleteRsvp)
	}
}

func (h *Handler) registerAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		admin.POST("/login", h.adminLogin)
		admin.GET("/status", h.adminStatus)
		admin.POST("/create", h.adminSessionMiddleware, h.createAdmin)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
