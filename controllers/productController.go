package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/initializers"
	"github.com/viratcollections/virat-api/models"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error":   errMsg,
	})
}

// getAWSUploader returns a configured S3 uploader for the image store.
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// uploadToBlobStore pushes one multipart file to S3 and returns its URL.
func uploadToBlobStore(uploader *manager.Uploader, file *multipart.FileHeader, keyPrefix string) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	uniqueFilename := fmt.Sprintf("%s-%s-%s", keyPrefix, time.Now().Format("20060102150405"), file.Filename)
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

type productInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       int64    `json:"price" binding:"required,min=0"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"subCategory"`
	Sizes       []string `json:"sizes" binding:"required,min=1"`
	Bestseller  bool     `json:"bestseller"`
}

// CreateProduct adds a catalog entry (admin). New products start in
// stock; images are attached separately through UploadProductImages.
func CreateProduct(ctx *gin.Context) {
	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sizes, err := json.Marshal(input.Sizes)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sizes", err)
		return
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Sizes:       sizes,
		Bestseller:  input.Bestseller,
		InStock:     true,
	}
	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// UploadProductImages uploads images to the blob store and appends their
// URLs to the product record.
func UploadProductImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	productID, err := strconv.Atoi(ctx.PostForm("productId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	var urls []string
	if len(product.Images) > 0 {
		if err := json.Unmarshal(product.Images, &urls); err != nil {
			urls = nil
		}
	}

	var failedUploads []string
	for _, file := range files {
		location, uploadErr := uploadToBlobStore(uploader, file, strconv.Itoa(productID))
		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}
		urls = append(urls, location)
	}

	encoded, err := json.Marshal(urls)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode image list", err)
		return
	}
	if err := initializers.DB.Model(&product).Update("images", encoded).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URLs", err)
		return
	}

	response := gin.H{"success": true, "urls": urls}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}
	ctx.JSON(http.StatusOK, response)
}

// GetProducts lists the catalog with pagination and name search.
func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	query := initializers.DB

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	result := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	initializers.DB.Model(&models.Product{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.First(&product, productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

type stockInput struct {
	InStock *bool `json:"inStock" binding:"required"`
}

// SetProductStock toggles visibility/purchasability (admin). Takes effect
// for the next checkout immediately.
func SetProductStock(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var input stockInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "inStock is required", err)
		return
	}

	result := initializers.DB.Model(&models.Product{}).Where("id = ?", productID).Update("in_stock", *input.InStock)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Product stock updated"})
}

// DeleteProduct removes a catalog entry (admin). Carts holding the
// product keep their lines; checkout re-validates and rejects them.
func DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	result := initializers.DB.Delete(&models.Product{}, productID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
