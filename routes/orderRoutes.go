package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
	"github.com/viratcollections/virat-api/middlewares"
)

func OrderRoutes(server *gin.Engine, order *controllers.OrderController) {
	group := server.Group("/api/order")
	{
		group.POST("/place", middlewares.RequireAuth(), order.PlaceOrder)
		group.POST("/userorders", middlewares.RequireAuth(), order.MyOrders)
		group.POST("/cancel", middlewares.RequireAuth(), order.CancelOrder)
		group.GET("/track/:orderId", order.TrackOrder)

		admin := group.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("/list", order.ListOrders)
			admin.POST("/status", order.UpdateStatus)
			admin.POST("/delete", order.DeleteOrder)
		}
	}
}
