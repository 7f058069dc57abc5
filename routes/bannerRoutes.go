package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
	"github.com/viratcollections/virat-api/middlewares"
)

func BannerRoutes(server *gin.Engine) {
	server.GET("/api/banner", controllers.GetBanners)

	admin := server.Group("/api/banner", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateBanner)
		admin.DELETE("/:id", controllers.DeleteBanner)
	}
}
