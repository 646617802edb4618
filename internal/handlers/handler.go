package handlers

import (
	"context"

	"taskboard/internal/logger"
	"taskboard/internal/service"
	"taskboard/internal/view"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the browser-facing HTTP layer to the stores and the view.
type Handler struct {
	services *service.Service
	view     *view.Controller
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, v *view.Controller, log *logger.Logger) *Handler {
	return &Handler{services: services, view: v, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(h.view.Templates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/state", h.getState)
	router.GET("/", h.index)

	h.registerAuthRoutes(router)
	h.registerTaskRoutes(router)

	// render stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.GET("/login", h.showLogin)
		auth.GET("/register", h.showRegister)
	}
	r.POST("/login", h.login)
	r.POST("/register", h.register)
	r.POST("/logout", h.logout)
}

func (h *Handler) registerTaskRoutes(r *gin.Engine) {
	tasks := r.Group("/tasks")
	{
		tasks.POST("", h.saveTask)
		tasks.GET("/new", h.newTask)
		tasks.POST("/editor/close", h.closeEditor)
		tasks.GET("/:id/edit", h.editTask)
		tasks.POST("/:id/toggle", h.toggleTask)
		tasks.GET("/:id/delete", h.askDelete)
		tasks.POST("/:id/delete", h.deleteTask)
		tasks.POST("/:id/delete/cancel", h.cancelDelete)
	}
}

// interactionContext keeps the request's values but not its cancellation, so
// a remote call the user started finishes even if the browser drops the
// request.
func interactionContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
