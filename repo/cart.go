package repo

import (
	"context"
	"time"

	"github.com/viratcollections/virat-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo interface {
	// IncrementItem adds one unit of (productID, size) to the user's cart
	// as a single atomic upsert. Concurrent calls never lose an increment.
	IncrementItem(ctx context.Context, userID, productID uint, size string) error
	// SetItemQuantity writes an absolute quantity; zero deletes the row.
	SetItemQuantity(ctx context.Context, userID, productID uint, size string, quantity int) error
	ItemsByUser(ctx context.Context, userID uint) ([]models.CartItem, error)
	// RemoveLines deletes the given (product, size) rows from the user's
	// cart, leaving any other lines intact. tx may be nil.
	RemoveLines(ctx context.Context, tx *gorm.DB, userID uint, lines []models.OrderItem) error
	// ClearUser removes every cart row for the user. tx may be nil, in
	// which case the call runs outside any transaction.
	ClearUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepo {
	return &cartRepo{db: db}
}

func (r *cartRepo) exec(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

var cartConflictColumns = []clause.Column{
	{Name: "user_id"}, {Name: "product_id"}, {Name: "size"},
}

func (r *cartRepo) IncrementItem(ctx context.Context, userID, productID uint, size string) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Size: size, Quantity: 1}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: cartConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

func (r *cartRepo) SetItemQuantity(ctx context.Context, userID, productID uint, size string, quantity int) error {
	if quantity == 0 {
		return r.db.WithContext(ctx).Unscoped().
			Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
			Delete(&models.CartItem{}).Error
	}
	item := models.CartItem{UserID: userID, ProductID: productID, Size: size, Quantity: quantity}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: cartConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

func (r *cartRepo) ItemsByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepo) RemoveLines(ctx context.Context, tx *gorm.DB, userID uint, lines []models.OrderItem) error {
	db := r.exec(tx).WithContext(ctx)
	for _, line := range lines {
		err := db.Unscoped().
			Where("user_id = ? AND product_id = ? AND size = ?", userID, line.ProductID, line.Size).
			Delete(&models.CartItem{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *cartRepo) ClearUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	return r.exec(tx).WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
