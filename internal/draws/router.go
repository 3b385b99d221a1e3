package draws

import (
	"github.com/gin-gonic/gin"
)

func SetupDrawRoutes(router *gin.RouterGroup, controller *Controller, adminOnly ...gin.HandlerFunc) {
	draws := router.Group("/admin/draws")
	draws.Use(adminOnly...)
	{
		draws.GET("/history", controller.GetHistory) // GET /api/v1/admin/draws/history?limit=20

		sessions := draws.Group("/sessions")
		{
			sessions.POST("", controller.CreateSession)
			sessions.GET("/:id", controller.GetSession)
			sessions.DELETE("/:id", controller.DeleteSession)
			sessions.PUT("/:id/roster", controller.ReplaceRoster)
			sessions.DELETE("/:id/roster", controller.ClearRoster)
			sessions.POST("/:id/roster/import", controller.ImportCards)
			sessions.POST("/:id/scan", controller.Scan)
			sessions.POST("/:id/draw", controller.Draw)
			sessions.GET("/:id/export", controller.ExportCSV)
			sessions.POST("/:id/reset", controller.Reset)
		}
	}
}
