package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tickethub/internal/cache"
	"tickethub/internal/models"
	"tickethub/internal/payment"
	"tickethub/internal/repository"
	"tickethub/monitoring"
	"tickethub/pkg/rabbitmq"
)

// refundCutoff is the window before the event inside which refunds are no
// longer accepted.
const refundCutoff = 48 * time.Hour

type SubmitRefundInput struct {
	UserID     string
	TicketCode string
	Reason     models.RefundReason
	Details    string
}

type RefundService interface {
	Submit(ctx context.Context, in SubmitRefundInput) (*models.RefundRequest, error)
	Decide(ctx context.Context, refundID uint, actorID string, approve bool) (*models.RefundRequest, error)
	Get(ctx context.Context, refundID uint, actorID string) (*models.RefundRequest, error)
	Withdraw(ctx context.Context, refundID uint, actorID string) error
	ListByUser(ctx context.Context, userID string) ([]models.RefundRequest, error)
	ListAll(ctx context.Context, pendingOnly bool) ([]models.RefundRequest, error)
}

type refundService struct {
	txm        repository.TxManager
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	refundRepo repository.RefundRepository
	reverser   payment.Reverser
	publisher  *rabbitmq.Publisher
	cache      *cache.Availability
}

func NewRefundService(
	txm repository.TxManager,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	refundRepo repository.RefundRepository,
	reverser payment.Reverser,
	publisher *rabbitmq.Publisher,
	availability *cache.Availability,
) RefundService {
	return &refundService{
		txm:        txm,
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		refundRepo: refundRepo,
		reverser:   reverser,
		publisher:  publisher,
		cache:      availability,
	}
}

// Submit validates the eligibility chain in a fixed order and reports only
// the first failure. Rejected requests do not block resubmission; the two
// pending guards are also backed by partial unique indexes for races that
// slip past the reads.
func (s *refundService) Submit(ctx context.Context, in SubmitRefundInput) (*models.RefundRequest, error) {
	if !in.Reason.Valid() {
		return nil, ErrInvalidRefundReason
	}

	var req *models.RefundRequest
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		ticket, err := s.ticketRepo.FindByCode(ctx, tx, in.TicketCode)
		if err != nil {
			return ErrTicketNotFound
		}
		if ticket.UserID != in.UserID {
			return ErrNotOwner
		}

		if approved, err := s.refundRepo.HasApproved(ctx, tx, in.TicketCode); err != nil {
			return err
		} else if approved {
			return ErrRefundAlreadyProcessed
		}
		if pending, err := s.refundRepo.HasPending(ctx, tx, in.TicketCode); err != nil {
			return err
		} else if pending {
			return ErrRefundAlreadyPending
		}
		if pending, err := s.refundRepo.UserHasPending(ctx, tx, in.UserID); err != nil {
			return err
		} else if pending {
			return ErrUserHasPendingRefund
		}

		if ticket.IsUsed {
			return ErrTicketAlreadyUsed
		}

		event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
		if err != nil {
			return ErrEventNotFound
		}
		now := time.Now()
		if !now.Before(event.ScheduledAt) {
			return ErrEventAlreadyOccurred
		}
		if event.ScheduledAt.Sub(now) < refundCutoff {
			return ErrTooCloseToEvent
		}

		if in.Reason == models.ReasonOther && strings.TrimSpace(in.Details) == "" {
			return ErrDetailsRequired
		}

		req = &models.RefundRequest{
			TicketCode: in.TicketCode,
			UserID:     in.UserID,
			Reason:     in.Reason,
			Details:    in.Details,
		}
		return s.refundRepo.Create(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}

	monitoring.RefundRequested()
	_ = s.publisher.Publish("refund.requested", req)
	return req, nil
}

// Decide settles a pending request. Approval restocks the quantity, marks
// the ticket unpaid and reverses the charge net of the sliding fee. When the
// reversal itself fails the request is committed as rejected so the ticket
// stays valid, and the failure is surfaced to the caller.
func (s *refundService) Decide(ctx context.Context, refundID uint, actorID string, approve bool) (*models.RefundRequest, error) {
	var (
		req            *models.RefundRequest
		eventID        uint
		reversalFailed bool
	)
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		r, err := s.refundRepo.FindByIDForUpdate(ctx, tx, refundID)
		if err != nil {
			return ErrRefundNotFound
		}
		if !r.Pending() {
			return ErrRefundAlreadyDecided
		}

		ticket, err := s.ticketRepo.FindByCode(ctx, tx, r.TicketCode)
		if err != nil {
			return ErrTicketNotFound
		}
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, ticket.EventID)
		if err != nil {
			return ErrEventNotFound
		}
		if event.OrganizerID != actorID {
			return ErrNotAuthorized
		}

		now := time.Now()
		req = r
		eventID = event.ID

		if !approve {
			r.Reject(now)
			return s.refundRepo.Save(ctx, tx, r)
		}

		fee := RefundFeePercent(event.ScheduledAt, now)
		amount := RefundAmount(ticket.Total, fee)
		if err := s.reverser.Reverse(ctx, ticket.TicketCode, amount); err != nil {
			log.Printf("refund %d: reversal of %s failed: %v", r.ID, ticket.TicketCode, err)
			reversalFailed = true
			r.Reject(now)
			return s.refundRepo.Save(ctx, tx, r)
		}

		if err := ReleaseStock(event, ticket.Type, ticket.Quantity); err != nil {
			return err
		}
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}
		ticket.PaymentConfirmed = false
		if err := s.ticketRepo.Save(ctx, tx, ticket); err != nil {
			return err
		}
		r.Approve(now)
		return s.refundRepo.Save(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}
	if reversalFailed {
		monitoring.RefundDecided("reversal_failed")
		return req, ErrRefundReversalFailed
	}

	if approve {
		s.invalidate(ctx, eventID)
		monitoring.RefundDecided("approved")
		_ = s.publisher.Publish("refund.approved", req)
	} else {
		monitoring.RefundDecided("rejected")
		_ = s.publisher.Publish("refund.rejected", req)
	}
	return req, nil
}

func (s *refundService) Get(ctx context.Context, refundID uint, actorID string) (*models.RefundRequest, error) {
	req, err := s.refundRepo.FindByID(ctx, refundID)
	if err != nil {
		return nil, ErrRefundNotFound
	}
	if req.UserID != actorID {
		err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
			ticket, err := s.ticketRepo.FindByCode(ctx, tx, req.TicketCode)
			if err != nil {
				return ErrNotAuthorized
			}
			event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
			if err != nil || event.OrganizerID != actorID {
				return ErrNotAuthorized
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

// Withdraw removes a pending request. Decided requests are immutable.
func (s *refundService) Withdraw(ctx context.Context, refundID uint, actorID string) error {
	return s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		req, err := s.refundRepo.FindByIDForUpdate(ctx, tx, refundID)
		if err != nil {
			return ErrRefundNotFound
		}
		if req.UserID != actorID {
			return ErrNotOwner
		}
		if !req.Pending() {
			return ErrRefundAlreadyDecided
		}
		return s.refundRepo.Delete(ctx, tx, req)
	})
}

func (s *refundService) ListByUser(ctx context.Context, userID string) ([]models.RefundRequest, error) {
	return s.refundRepo.FindByUser(ctx, userID)
}

func (s *refundService) ListAll(ctx context.Context, pendingOnly bool) ([]models.RefundRequest, error) {
	return s.refundRepo.FindAll(ctx, pendingOnly)
}

func (s *refundService) invalidate(ctx context.Context, eventID uint) {
	_ = s.cache.Invalidate(ctx, eventID)
}

// RefundFeePercent returns the retention percentage for a refund decided at
// the given moment. The tiers step on whole days remaining before the event.
func RefundFeePercent(scheduledAt, now time.Time) int {
	days := int(scheduledAt.Sub(now).Hours() / 24)
	switch {
	case days > 7:
		return 0
	case days > 3:
		return 10
	case days > 1:
		return 20
	default:
		return 30
	}
}

// RefundAmount applies the fee percentage to the ticket total.
func RefundAmount(total decimal.Decimal, feePercent int) decimal.Decimal {
	keep := decimal.NewFromInt(int64(100 - feePercent)).Div(decimal.NewFromInt(100))
	return total.Mul(keep).Round(2)
}
