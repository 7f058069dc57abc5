package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
	}
}
