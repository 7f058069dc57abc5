package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Virat Collections API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/signup" - Create user account
- POST "/api/auth/login" - Access user account

PRODUCT
- GET "/api/product" - List products
- GET "/api/product/:id" - Get product by ID
- POST "/api/product" - Create product (admin)
- POST "/api/product/images" - Upload product images (admin)
- PATCH "/api/product/:id/stock" - Toggle product stock (admin)
- DELETE "/api/product/:id" - Delete product (admin)

CART
- POST "/api/cart/get" - Get cart contents
- POST "/api/cart/add" - Add an item to the cart
- POST "/api/cart/update" - Set an item quantity

ORDER
- POST "/api/order/place" - Place a COD order
- POST "/api/order/userorders" - Get your orders
- POST "/api/order/cancel" - Cancel an order
- GET "/api/order/track/:orderId" - Track an order
- POST "/api/order/list" - List all orders (admin)
- POST "/api/order/status" - Update order status (admin)
- POST "/api/order/delete" - Delete an order (admin)

PAYMENT
- POST "/api/payment/phonepe" - Start a PhonePe payment
- POST "/api/payment/verify-phonepe" - Verify a PhonePe payment
- POST "/api/payment/phonepe-callback" - Gateway redirect callback

BANNER
- GET "/api/banner" - List banners
- POST "/api/banner" - Create banner (admin)
- DELETE "/api/banner/:id" - Delete banner (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
