package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/services"
	"github.com/viratcollections/virat-api/utils"
)

type OrderController struct {
	checkout *services.CheckoutService
	ledger   *services.LedgerService
}

func NewOrderController(checkout *services.CheckoutService, ledger *services.LedgerService) *OrderController {
	return &OrderController{checkout: checkout, ledger: ledger}
}

type placeOrderInput struct {
	Address       models.Address       `json:"address" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
}

// PlaceOrder places a COD order from the caller's cart. The amount is
// computed server-side; a client-sent total is never read.
func (c *OrderController) PlaceOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input placeOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Complete delivery address and payment method are required")
		return
	}

	order, err := c.checkout.PlaceOrder(ctx.Request.Context(), userID, input.Address, input.PaymentMethod)
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	if email := claimEmail(ctx); email != "" {
		go func() {
			if err := utils.SendOrderConfirmation(email, order.ID, order.Amount); err != nil {
				log.Println("Failed to send order confirmation:", err)
			}
		}()
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"success": true,
		"orderId": order.ID,
		"amount":  order.Amount,
		"message": "Order placed successfully",
	})
}

// MyOrders returns the caller's order history, most recent first.
func (c *OrderController) MyOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	orders, err := c.ledger.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "orders": orders})
}

type cancelOrderInput struct {
	OrderID uint `json:"orderId" binding:"required"`
}

// CancelOrder lets the owner cancel an order that has not progressed
// past "Order Placed".
func (c *OrderController) CancelOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input cancelOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order ID is required")
		return
	}

	if err := c.ledger.Cancel(ctx.Request.Context(), userID, input.OrderID); err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Order cancelled"})
}

// TrackOrder is the public tracking endpoint: order status by id.
func (c *OrderController) TrackOrder(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 64)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := c.ledger.Get(ctx.Request.Context(), uint(orderID))
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "order": order})
}

// ListOrders is the admin view of the full ledger with pagination
// metadata. Paging happens in the query, not in memory.
func (c *OrderController) ListOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	orders, total, err := c.ledger.ListAll(ctx.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"metadata": gin.H{
			"total":       total,
			"currentPage": page,
			"limit":       limit,
			"hasPrevPage": page > 1,
			"hasNextPage": totalPages > page,
		},
	})
}

type updateStatusInput struct {
	OrderID uint               `json:"orderId" binding:"required"`
	Status  models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus moves an order along the status state machine (admin).
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	var input updateStatusInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order ID and status are required")
		return
	}

	if err := c.ledger.SetStatus(ctx.Request.Context(), input.OrderID, input.Status); err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}

type deleteOrderInput struct {
	OrderID uint `json:"orderId" binding:"required"`
}

// DeleteOrder hard-deletes an order (admin).
func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	var input deleteOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order ID is required")
		return
	}

	if err := c.ledger.Delete(ctx.Request.Context(), input.OrderID); err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	log.Println("Order deleted:", input.OrderID)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}
