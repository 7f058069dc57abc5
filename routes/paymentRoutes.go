package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
	"github.com/viratcollections/virat-api/middlewares"
)

func PaymentRoutes(server *gin.Engine, payment *controllers.PaymentController) {
	group := server.Group("/api/payment")
	{
		group.POST("/phonepe", middlewares.RequireAuth(), payment.InitiatePhonePe)
		group.POST("/verify-phonepe", middlewares.RequireAuth(), payment.VerifyPhonePe)
		// Called by the gateway redirect; carries no authority.
		group.POST("/phonepe-callback", payment.PhonePeCallback)
	}
}
