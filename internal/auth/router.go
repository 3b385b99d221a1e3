package auth

import (
	"stampcard/internal/shared/config"
	"stampcard/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/admin/login", authRouter.controller.AdminLogin)

		protected := auth.Group("")
		protected.Use(middleware.AdminOnly(authRouter.config)...)
		{
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
