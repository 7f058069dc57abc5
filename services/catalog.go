package services

import (
	"context"
	"database/sql"

	"github.com/viratcollections/virat-api/models"
	"github.com/viratcollections/virat-api/repo"
	"gorm.io/gorm"
)

// TxRunner runs a function inside a storage transaction. *gorm.DB
// satisfies it directly.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// CatalogService is the read-only view over products that checkout
// validates against. It always reflects the latest committed catalog
// state; admin edits apply to the next checkout.
type CatalogService struct {
	products repo.ProductRepo
}

func NewCatalogService(products repo.ProductRepo) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) PriceOf(ctx context.Context, productID uint) (int64, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return 0, wrap(KindStorage, "failed to look up product", err)
	}
	if product == nil {
		return 0, NewError(KindNotFound, "product not found")
	}
	return product.Price, nil
}

// IsPurchasable reports whether the product exists, is in stock and
// carries the requested size.
func (s *CatalogService) IsPurchasable(ctx context.Context, productID uint, size string) (bool, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return false, wrap(KindStorage, "failed to look up product", err)
	}
	if product == nil {
		return false, nil
	}
	return product.InStock && product.HasSize(size), nil
}

func (s *CatalogService) find(ctx context.Context, productID uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, wrap(KindStorage, "failed to look up product", err)
	}
	return product, nil
}
