package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/viratcollections/virat-api/services"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"success": false, "message": message})
}

// respondWithDomainError maps the service error taxonomy onto HTTP status
// codes. Storage and upstream failures are logged; their details stay out
// of the response body.
func respondWithDomainError(ctx *gin.Context, err error) {
	var domainErr *services.Error
	if !errors.As(err, &domainErr) {
		log.Println("Unclassified error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch domainErr.Kind {
	case services.KindValidation:
		sendErrorResponse(ctx, http.StatusBadRequest, domainErr.Message)
	case services.KindNotFound:
		sendErrorResponse(ctx, http.StatusNotFound, domainErr.Message)
	case services.KindAuthorization:
		sendErrorResponse(ctx, http.StatusForbidden, domainErr.Message)
	case services.KindConflict:
		sendErrorResponse(ctx, http.StatusConflict, domainErr.Message)
	case services.KindUpstream:
		log.Println("Upstream error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, domainErr.Message)
	default:
		log.Println("Storage error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

// claimEmail reads the caller's email from the JWT claims, or "" when
// unavailable.
func claimEmail(ctx *gin.Context) string {
	value, exists := ctx.Get("user")
	if !exists {
		return ""
	}
	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

// currentUserID reads the user id resolved by the auth middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get("user_id")
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return userID, true
}
