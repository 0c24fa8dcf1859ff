package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tickethub/internal/models"
)

type RefundRepository interface {
	Create(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error
	Save(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error
	Delete(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error
	FindByID(ctx context.Context, id uint) (*models.RefundRequest, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RefundRequest, error)
	HasApproved(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error)
	HasPending(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error)
	UserHasPending(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]models.RefundRequest, error)
	FindAll(ctx context.Context, pendingOnly bool) ([]models.RefundRequest, error)
}

type refundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) Create(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error {
	return tx.WithContext(ctx).Create(req).Error
}

func (r *refundRepository) Save(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error {
	return tx.WithContext(ctx).Save(req).Error
}

func (r *refundRepository) Delete(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error {
	return tx.WithContext(ctx).Delete(req).Error
}

func (r *refundRepository) FindByID(ctx context.Context, id uint) (*models.RefundRequest, error) {
	var req models.RefundRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *refundRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RefundRequest, error) {
	var req models.RefundRequest
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *refundRepository) HasApproved(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.RefundRequest{}).
		Where("ticket_code = ? AND approved = ?", ticketCode, true).
		Count(&count).Error
	return count > 0, err
}

func (r *refundRepository) HasPending(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.RefundRequest{}).
		Where("ticket_code = ? AND approved IS NULL", ticketCode).
		Count(&count).Error
	return count > 0, err
}

func (r *refundRepository) UserHasPending(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.RefundRequest{}).
		Where("user_id = ? AND approved IS NULL", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *refundRepository) FindByUser(ctx context.Context, userID string) ([]models.RefundRequest, error) {
	var reqs []models.RefundRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *refundRepository) FindAll(ctx context.Context, pendingOnly bool) ([]models.RefundRequest, error) {
	q := r.db.WithContext(ctx)
	if pendingOnly {
		q = q.Where("approved IS NULL")
	}

	var reqs []models.RefundRequest
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
