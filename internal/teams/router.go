package teams

import (
	"github.com/gin-gonic/gin"
)

func SetupTeamRoutes(router *gin.RouterGroup, controller *Controller, adminOnly ...gin.HandlerFunc) {
	router.GET("/teams", controller.ListTeams) // GET /api/v1/teams - registration dropdown

	adminTeams := router.Group("/admin/teams")
	adminTeams.Use(adminOnly...)
	{
		adminTeams.GET("", controller.ListTeams)
		adminTeams.PUT("", controller.ReplaceTeams) // PUT /api/v1/admin/teams - replace list
	}
}
