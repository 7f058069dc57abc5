package repo

import (
	"context"
	"errors"

	"github.com/viratcollections/virat-api/models"
	"gorm.io/gorm"
)

type OrderRepo interface {
	// Create inserts the order and its item snapshots. tx may be nil.
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	// FindByID returns (nil, nil) when the order does not exist.
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	// ListAll pages through the full ledger, most recent first.
	ListAll(ctx context.Context, limit, offset int) ([]models.Order, error)
	CountAll(ctx context.Context) (int64, error)
	// UpdateStatus moves the order from one status to another as a
	// single guarded write. Returns false when the order was no longer
	// at the expected status, so a stale reader cannot clobber a
	// concurrent transition.
	UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error)
	// Delete hard-removes the order; returns the number of rows removed.
	Delete(ctx context.Context, id uint) (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) exec(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return r.exec(tx).WithContext(ctx).Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("transaction_id = ?", transactionID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Order{}, id)
	return result.RowsAffected, result.Error
}
