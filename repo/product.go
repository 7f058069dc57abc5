package repo

import (
	"context"
	"errors"

	"github.com/viratcollections/virat-api/models"
	"gorm.io/gorm"
)

type ProductRepo interface {
	// FindByID returns (nil, nil) when the product does not exist.
	FindByID(ctx context.Context, id uint) (*models.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
