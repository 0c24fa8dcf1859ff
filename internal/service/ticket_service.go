package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tickethub/internal/cache"
	"tickethub/internal/models"
	"tickethub/internal/payment"
	"tickethub/internal/pricing"
	"tickethub/internal/repository"
	"tickethub/monitoring"
	"tickethub/pkg/rabbitmq"
)

type PurchaseInput struct {
	UserID   string
	Type     models.TicketType
	Quantity int
	Card     payment.Card
}

type EditInput struct {
	UserID   string
	Type     models.TicketType
	Quantity int
}

type TicketService interface {
	Purchase(ctx context.Context, eventID uint, in PurchaseInput) (*models.Ticket, error)
	Edit(ctx context.Context, ticketID uint, in EditInput) (*models.Ticket, error)
	Delete(ctx context.Context, ticketID uint, actorID string) error
	MarkUsed(ctx context.Context, ticketID uint, actorID string) (*models.Ticket, error)
	Get(ctx context.Context, ticketID uint, actorID string) (*models.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]models.Ticket, error)
}

type ticketService struct {
	txm        repository.TxManager
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	authorizer payment.Authorizer
	publisher  *rabbitmq.Publisher
	cache      *cache.Availability
	editCutoff time.Duration
}

func NewTicketService(
	txm repository.TxManager,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	authorizer payment.Authorizer,
	publisher *rabbitmq.Publisher,
	availability *cache.Availability,
	editCutoff time.Duration,
) TicketService {
	return &ticketService{
		txm:        txm,
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		authorizer: authorizer,
		publisher:  publisher,
		cache:      availability,
		editCutoff: editCutoff,
	}
}

// Purchase runs the whole chain (limiter, reservation, pricing, record,
// payment authorization) as one transaction under the event row lock. A
// failure at any step, including a payment decline, rolls everything back, so
// a reserved-but-unpaid state is never observable.
func (s *ticketService) Purchase(ctx context.Context, eventID uint, in PurchaseInput) (*models.Ticket, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var ticket *models.Ticket
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}

		owned, err := s.ticketRepo.SumConfirmedQuantity(ctx, tx, in.UserID, eventID, 0)
		if err != nil {
			return err
		}
		if err := CheckPurchase(owned, in.Type, in.Quantity); err != nil {
			return err
		}

		if err := ReserveStock(event, in.Type, in.Quantity); err != nil {
			return err
		}
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		quote := pricing.Compute(event.Price(in.Type), in.Quantity)
		ticket = &models.Ticket{
			TicketCode:       models.NewTicketCode(event.ID),
			UserID:           in.UserID,
			EventID:          event.ID,
			Type:             in.Type,
			Quantity:         in.Quantity,
			Subtotal:         quote.Subtotal,
			Taxes:            quote.Taxes,
			Total:            quote.Total,
			PaymentConfirmed: true,
		}
		if err := s.ticketRepo.Create(ctx, tx, ticket); err != nil {
			return err
		}

		// Authorization is last: a decline aborts the transaction and
		// releases the reservation with it.
		if err := s.authorizer.Authorize(ctx, in.Card, quote.Total); err != nil {
			return fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		return nil
	})
	if err != nil {
		monitoring.PurchaseRejected(rejectionReason(err))
		return nil, err
	}

	s.invalidate(ctx, eventID)
	monitoring.TicketsSold(string(in.Type), in.Quantity)
	_ = s.publisher.Publish("ticket.purchased", ticket)
	return ticket, nil
}

// Edit re-runs the caps against the edit's net effect and moves only the
// inventory delta (full release + reserve when the class changes). Any
// failure leaves both the ticket and the pools as they were.
func (s *ticketService) Edit(ctx context.Context, ticketID uint, in EditInput) (*models.Ticket, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var updated *models.Ticket
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		ticket, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, ticketID)
		if err != nil {
			return ErrTicketNotFound
		}
		if ticket.UserID != in.UserID {
			return ErrNotOwner
		}
		if !ticket.PaymentConfirmed {
			return ErrTicketRefunded
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, ticket.EventID)
		if err != nil {
			return ErrEventNotFound
		}
		if !time.Now().Before(event.ScheduledAt.Add(-s.editCutoff)) {
			return ErrEditWindowClosed
		}

		others, err := s.ticketRepo.SumConfirmedQuantity(ctx, tx, in.UserID, ticket.EventID, ticket.ID)
		if err != nil {
			return err
		}
		if err := CheckPurchase(others, in.Type, in.Quantity); err != nil {
			return err
		}

		if in.Type != ticket.Type {
			if err := ReleaseStock(event, ticket.Type, ticket.Quantity); err != nil {
				return err
			}
			if err := ReserveStock(event, in.Type, in.Quantity); err != nil {
				return err
			}
		} else if diff := in.Quantity - ticket.Quantity; diff > 0 {
			if err := ReserveStock(event, in.Type, diff); err != nil {
				return err
			}
		} else if diff < 0 {
			if err := ReleaseStock(event, in.Type, -diff); err != nil {
				return err
			}
		}
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		quote := pricing.Compute(event.Price(in.Type), in.Quantity)
		ticket.Type = in.Type
		ticket.Quantity = in.Quantity
		ticket.Subtotal = quote.Subtotal
		ticket.Taxes = quote.Taxes
		ticket.Total = quote.Total
		if err := s.ticketRepo.Save(ctx, tx, ticket); err != nil {
			return err
		}
		updated = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, updated.EventID)
	_ = s.publisher.Publish("ticket.updated", updated)
	return updated, nil
}

func (s *ticketService) Delete(ctx context.Context, ticketID uint, actorID string) error {
	var eventID uint
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		ticket, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, ticketID)
		if err != nil {
			return ErrTicketNotFound
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, ticket.EventID)
		if err != nil {
			return ErrEventNotFound
		}
		if actorID != ticket.UserID && actorID != event.OrganizerID {
			return ErrNotAuthorized
		}

		// A refunded ticket already returned its quantity when the
		// refund was approved; releasing again would breach the
		// available<=total invariant.
		if ticket.PaymentConfirmed {
			if err := ReleaseStock(event, ticket.Type, ticket.Quantity); err != nil {
				return err
			}
			if err := s.eventRepo.Save(ctx, tx, event); err != nil {
				return err
			}
		}

		eventID = event.ID
		return s.ticketRepo.Delete(ctx, tx, ticket)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, eventID)
	_ = s.publisher.Publish("ticket.deleted", map[string]uint{"ticket_id": ticketID, "event_id": eventID})
	return nil
}

// MarkUsed flips is_used once. Re-marking reports ErrTicketAlreadyUsed with
// the ticket still attached; the HTTP layer treats that as a warning rather
// than a rejection.
func (s *ticketService) MarkUsed(ctx context.Context, ticketID uint, actorID string) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		t, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, ticketID)
		if err != nil {
			return ErrTicketNotFound
		}

		event, err := s.eventRepo.FindByID(ctx, t.EventID)
		if err != nil {
			return ErrEventNotFound
		}
		if event.OrganizerID != actorID {
			return ErrNotAuthorized
		}

		ticket = t
		if t.IsUsed {
			return ErrTicketAlreadyUsed
		}
		t.IsUsed = true
		return s.ticketRepo.Save(ctx, tx, t)
	})
	if errors.Is(err, ErrTicketAlreadyUsed) {
		return ticket, err
	}
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish("ticket.used", ticket)
	return ticket, nil
}

func (s *ticketService) Get(ctx context.Context, ticketID uint, actorID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, ErrTicketNotFound
	}
	if ticket.UserID != actorID && (ticket.Event == nil || ticket.Event.OrganizerID != actorID) {
		return nil, ErrNotAuthorized
	}
	return ticket, nil
}

func (s *ticketService) ListByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	return s.ticketRepo.FindByUser(ctx, userID)
}

func (s *ticketService) invalidate(ctx context.Context, eventID uint) {
	_ = s.cache.Invalidate(ctx, eventID)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrTotalCapExceeded):
		return "total_cap"
	case errors.Is(err, ErrVipCapExceeded):
		return "vip_cap"
	case errors.Is(err, ErrPaymentDeclined):
		return "payment_declined"
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	default:
		return "other"
	}
}
