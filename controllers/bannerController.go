package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/initializers"
	"github.com/viratcollections/virat-api/models"
)

// CreateBanner uploads the banner image and stores the record (admin).
func CreateBanner(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Banner image is required", err)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	location, err := uploadToBlobStore(uploader, file, "banner")
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload banner image", err)
		return
	}

	banner := models.Banner{
		Image:    location,
		Title:    ctx.DefaultPostForm("title", "NEW SEASON ARRIVALS"),
		Subtitle: ctx.DefaultPostForm("subtitle", "SHOP NOW"),
	}
	if err := initializers.DB.Create(&banner).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create banner", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "banner": banner})
}

// GetBanners lists banners for the storefront.
func GetBanners(ctx *gin.Context) {
	var banners []models.Banner
	if err := initializers.DB.Order("created_at desc").Find(&banners).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch banners", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "banners": banners})
}

// DeleteBanner removes a banner (admin).
func DeleteBanner(ctx *gin.Context) {
	bannerID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid banner ID", err)
		return
	}

	result := initializers.DB.Delete(&models.Banner{}, bannerID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete banner", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Banner not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Banner deleted"})
}
