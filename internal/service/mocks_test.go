package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tickethub/internal/models"
	"tickethub/internal/payment"
)

// fakeTxManager runs the callback without a database. The repo mocks ignore
// the tx argument, so passing nil through is fine.
type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn         func(ctx context.Context, event *models.Event) error
	findByIDFn       func(ctx context.Context, id uint) (*models.Event, error)
	findByIDUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	saveFn           func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	findAllFn        func(ctx context.Context) ([]models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.findByIDUpdateFn(ctx, tx, id)
}
func (m *mockEventRepo) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, event)
	}
	return nil
}
func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	return m.findAllFn(ctx)
}

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	createFn         func(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	saveFn           func(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	deleteFn         func(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	findByIDFn       func(ctx context.Context, id uint) (*models.Ticket, error)
	findByIDUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error)
	findByCodeFn     func(ctx context.Context, tx *gorm.DB, code string) (*models.Ticket, error)
	sumConfirmedFn   func(ctx context.Context, tx *gorm.DB, userID string, eventID uint, excludeID uint) (int, error)
	findByUserFn     func(ctx context.Context, userID string) ([]models.Ticket, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, ticket)
	}
	return nil
}
func (m *mockTicketRepo) Save(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, ticket)
	}
	return nil
}
func (m *mockTicketRepo) Delete(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, ticket)
	}
	return nil
}
func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockTicketRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error) {
	return m.findByIDUpdateFn(ctx, tx, id)
}
func (m *mockTicketRepo) FindByCode(ctx context.Context, tx *gorm.DB, code string) (*models.Ticket, error) {
	return m.findByCodeFn(ctx, tx, code)
}
func (m *mockTicketRepo) SumConfirmedQuantity(ctx context.Context, tx *gorm.DB, userID string, eventID uint, excludeID uint) (int, error) {
	if m.sumConfirmedFn != nil {
		return m.sumConfirmedFn(ctx, tx, userID, eventID, excludeID)
	}
	return 0, nil
}
func (m *mockTicketRepo) FindByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	return m.findByUserFn(ctx, userID)
}

// --- Mock RefundRepository ---

type mockRefundRepo struct {
	createFn         func(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error
	saveFn           func(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error
	deleteFn         func(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error
	findByIDFn       func(ctx context.Context, id uint) (*models.RefundRequest, error)
	findByIDUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.RefundRequest, error)
	hasApprovedFn    func(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error)
	hasPendingFn     func(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error)
	userHasPendingFn func(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
	findByUserFn     func(ctx context.Context, userID string) ([]models.RefundRequest, error)
	findAllFn        func(ctx context.Context, pendingOnly bool) ([]models.RefundRequest, error)
}

func (m *mockRefundRepo) Create(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, req)
	}
	return nil
}
func (m *mockRefundRepo) Save(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, req)
	}
	return nil
}
func (m *mockRefundRepo) Delete(ctx context.Context, tx *gorm.DB, req *models.RefundRequest) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, req)
	}
	return nil
}
func (m *mockRefundRepo) FindByID(ctx context.Context, id uint) (*models.RefundRequest, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRefundRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RefundRequest, error) {
	return m.findByIDUpdateFn(ctx, tx, id)
}
func (m *mockRefundRepo) HasApproved(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error) {
	if m.hasApprovedFn != nil {
		return m.hasApprovedFn(ctx, tx, ticketCode)
	}
	return false, nil
}
func (m *mockRefundRepo) HasPending(ctx context.Context, tx *gorm.DB, ticketCode string) (bool, error) {
	if m.hasPendingFn != nil {
		return m.hasPendingFn(ctx, tx, ticketCode)
	}
	return false, nil
}
func (m *mockRefundRepo) UserHasPending(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	if m.userHasPendingFn != nil {
		return m.userHasPendingFn(ctx, tx, userID)
	}
	return false, nil
}
func (m *mockRefundRepo) FindByUser(ctx context.Context, userID string) ([]models.RefundRequest, error) {
	return m.findByUserFn(ctx, userID)
}
func (m *mockRefundRepo) FindAll(ctx context.Context, pendingOnly bool) ([]models.RefundRequest, error) {
	return m.findAllFn(ctx, pendingOnly)
}

// --- Mock payment gateway ---

type mockAuthorizer struct {
	authorizeFn func(ctx context.Context, card payment.Card, amount decimal.Decimal) error
}

func (m *mockAuthorizer) Authorize(ctx context.Context, card payment.Card, amount decimal.Decimal) error {
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, card, amount)
	}
	return nil
}

type mockReverser struct {
	reverseFn func(ctx context.Context, chargeRef string, amount decimal.Decimal) error
}

func (m *mockReverser) Reverse(ctx context.Context, chargeRef string, amount decimal.Decimal) error {
	if m.reverseFn != nil {
		return m.reverseFn(ctx, chargeRef, amount)
	}
	return nil
}
