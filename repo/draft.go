package repo

import (
	"context"
	"errors"
	"time"

	"github.com/viratcollections/virat-api/models"
	"gorm.io/gorm"
)

type DraftRepo interface {
	Create(ctx context.Context, draft *models.PaymentDraft) error
	// FindByTransactionID returns (nil, nil) when no draft exists.
	FindByTransactionID(ctx context.Context, transactionID string) (*models.PaymentDraft, error)
	// Consume flips the draft to consumed iff it was not consumed yet.
	// Returns false when another call already won the race. tx may be nil.
	Consume(ctx context.Context, tx *gorm.DB, transactionID string) (bool, error)
	// ListPendingBefore returns unconsumed drafts created before the cutoff.
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.PaymentDraft, error)
	DeleteByTransactionID(ctx context.Context, transactionID string) error
}

type draftRepo struct {
	db *gorm.DB
}

func NewDraftRepo(db *gorm.DB) DraftRepo {
	return &draftRepo{db: db}
}

func (r *draftRepo) exec(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *draftRepo) Create(ctx context.Context, draft *models.PaymentDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.PaymentDraft, error) {
	var draft models.PaymentDraft
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepo) Consume(ctx context.Context, tx *gorm.DB, transactionID string) (bool, error) {
	result := r.exec(tx).WithContext(ctx).Model(&models.PaymentDraft{}).
		Where("transaction_id = ? AND consumed = ?", transactionID, false).
		Update("consumed", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *draftRepo) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.PaymentDraft, error) {
	var drafts []models.PaymentDraft
	err := r.db.WithContext(ctx).
		Where("consumed = ? AND created_at < ?", false, cutoff).
		Limit(limit).
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepo) DeleteByTransactionID(ctx context.Context, transactionID string) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("transaction_id = ?", transactionID).
		Delete(&models.PaymentDraft{}).Error
}
