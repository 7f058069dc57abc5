package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
	"github.com/viratcollections/virat-api/middlewares"
)

func CartRoutes(server *gin.Engine, cart *controllers.CartController) {
	group := server.Group("/api/cart", middlewares.RequireAuth())
	{
		group.POST("/get", cart.GetCart)
		group.POST("/add", cart.AddToCart)
		group.POST("/update", cart.UpdateCart)
	}
}
