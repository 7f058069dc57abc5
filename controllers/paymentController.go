package controllers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type initiatePaymentInput struct {
	Address models.Address `json:"address" binding:"required"`
}

// InitiatePhonePe snapshots the cart into a server-side draft and returns
// the gateway redirect URL.
func (c *PaymentController) InitiatePhonePe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input initiatePaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Complete delivery address is required")
		return
	}

	redirectURL, transactionID, err := c.payments.Initiate(ctx.Request.Context(), userID, input.Address)
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":               true,
		"paymentUrl":            redirectURL,
		"merchantTransactionId": transactionID,
	})
}

type verifyPaymentInput struct {
	MerchantTransactionID string `json:"merchantTransactionId" binding:"required"`
}

// VerifyPhonePe checks the transaction with the gateway and converts the
// draft into an order on confirmed success. Safe to call twice: the
// second call returns the already created order.
func (c *PaymentController) VerifyPhonePe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input verifyPaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Merchant transaction ID is required")
		return
	}

	order, err := c.payments.Verify(ctx.Request.Context(), userID, input.MerchantTransactionID)
	if err != nil {
		respondWithDomainError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"orderId": order.ID,
		"message": "Payment verified and order created",
	})
}

// PhonePeCallback handles the browser redirect back from the gateway and
// forwards the customer to the frontend. The redirect carries no
// authority: order creation only ever happens through verification
// against the gateway's status API.
func (c *PaymentController) PhonePeCallback(ctx *gin.Context) {
	frontend := os.Getenv("FRONTEND_URL")

	encoded := ctx.PostForm("response")
	if encoded == "" {
		ctx.Redirect(http.StatusFound, frontend+"/payment-failed")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		ctx.Redirect(http.StatusFound, frontend+"/payment-failed")
		return
	}

	var callback struct {
		Success bool `json:"success"`
		Data    struct {
			State                 string `json:"state"`
			MerchantTransactionID string `json:"merchantTransactionId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &callback); err != nil || !callback.Success || callback.Data.State != "COMPLETED" {
		ctx.Redirect(http.StatusFound, frontend+"/payment-failed")
		return
	}

	ctx.Redirect(http.StatusFound, frontend+"/order-success?txn="+callback.Data.MerchantTransactionID)
}
