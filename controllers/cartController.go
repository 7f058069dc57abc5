package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

type addToCartInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type updateCartInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// AddToCart increments the (product, size) line by one.
func (c *CartController) AddToCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input addToCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Product ID and size are required")
		return
	}

	if err := c.carts.Add(ctx.Request.Context(), userID, input.ProductID, input.Size); err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Item added to cart"})
}

// UpdateCart sets an absolute quantity; zero removes the line.
func (c *CartController) UpdateCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input updateCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Product ID, size and quantity are required")
		return
	}

	if err := c.carts.SetQuantity(ctx.Request.Context(), userID, input.ProductID, input.Size, *input.Quantity); err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Cart updated"})
}

// GetCart returns the caller's cart mapping; empty for a fresh user.
func (c *CartController) GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	cartData, err := c.carts.Get(ctx.Request.Context(), userID)
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "cartData": cartData})
}
