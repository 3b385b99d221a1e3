package booths

import (
	"github.com/gin-gonic/gin"
)

func SetupBoothRoutes(router *gin.RouterGroup, controller Controller, adminOnly ...gin.HandlerFunc) {
	// Public routes
	publicBooths := router.Group("/booths")
	{
		publicBooths.GET("", controller.ListBooths) // GET /api/v1/booths
		publicBooths.GET("/:id", controller.GetBooth)
	}

	// Admin routes
	adminBooths := router.Group("/admin/booths")
	adminBooths.Use(adminOnly...)
	{
		adminBooths.GET("/:id/qr", controller.GetBoothQRCode) // GET /api/v1/admin/booths/:id/qr - printable code
	}
}
