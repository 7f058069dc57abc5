package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
	"github.com/viratcollections/virat-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/api/product", controllers.GetProducts)
	server.GET("/api/product/:id", controllers.GetProduct)

	admin := server.Group("/api/product", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateProduct)
		admin.POST("/images", controllers.UploadProductImages)
		admin.PATCH("/:id/stock", controllers.SetProductStock)
		admin.DELETE("/:id", controllers.DeleteProduct)
	}
}
