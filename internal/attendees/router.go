package attendees

import (
	"github.com/gin-gonic/gin"
)

func SetupCardRoutes(router *gin.RouterGroup, controller *Controller, adminOnly ...gin.HandlerFunc) {
	cards := router.Group("/cards")
	{
		cards.POST("", controller.Register)                           // POST /api/v1/cards - open a card
		cards.GET("/:id", controller.GetCard)                         // GET /api/v1/cards/:id - progress
		cards.POST("/:id/stamps", controller.CollectStamp)            // POST /api/v1/cards/:id/stamps - scan booth code
		cards.GET("/:id/submission", controller.GetSubmission)        // GET /api/v1/cards/:id/submission - token + QR
		cards.GET("/:id/submission/qr", controller.GetSubmissionQRCode)
		cards.DELETE("/:id", controller.Logout)
	}

	adminCards := router.Group("/admin/cards")
	adminCards.Use(adminOnly...)
	{
		adminCards.GET("/roster", controller.GetEligibleRoster) // GET /api/v1/admin/cards/roster - eligible tokens as roster text
	}
}
