package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tickethub/internal/models"
)

type TicketRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	Save(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	Delete(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error)
	FindByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Ticket, error)
	// SumConfirmedQuantity totals the user's confirmed (non-refunded)
	// tickets for an event. excludeID skips one ticket, for edits; zero
	// excludes nothing.
	SumConfirmedQuantity(ctx context.Context, tx *gorm.DB, userID string, eventID uint, excludeID uint) (int, error)
	FindByUser(ctx context.Context, userID string) ([]models.Ticket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) Save(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Delete(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).Preload("Event").First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.WithContext(ctx).
		Where("ticket_code = ?", code).
		First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) SumConfirmedQuantity(ctx context.Context, tx *gorm.DB, userID string, eventID uint, excludeID uint) (int, error) {
	q := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("user_id = ? AND event_id = ? AND payment_confirmed = ?", userID, eventID, true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var total int
	err := q.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return total, err
}

func (r *ticketRepository) FindByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}
