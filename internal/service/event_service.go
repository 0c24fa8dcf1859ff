package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tickethub/internal/cache"
	"tickethub/internal/models"
	"tickethub/internal/repository"
	"tickethub/pkg/rabbitmq"
)

type CreateEventInput struct {
	Title        string
	OrganizerID  string
	ScheduledAt  time.Time
	GeneralPrice decimal.Decimal
	VipPrice     decimal.Decimal
	GeneralTotal int
	VipTotal     int
}

// UpdateEventInput carries only the fields the organizer wants to change.
type UpdateEventInput struct {
	Title        *string
	ScheduledAt  *time.Time
	GeneralPrice *decimal.Decimal
	VipPrice     *decimal.Decimal
	GeneralTotal *int
	VipTotal     *int
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*models.Event, error)
	Update(ctx context.Context, eventID uint, actorID string, in UpdateEventInput) (*models.Event, error)
	Get(ctx context.Context, eventID uint) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Status(ctx context.Context, eventID uint) (*cache.Snapshot, error)
}

type eventService struct {
	txm       repository.TxManager
	eventRepo repository.EventRepository
	publisher *rabbitmq.Publisher
	cache     *cache.Availability
}

func NewEventService(
	txm repository.TxManager,
	eventRepo repository.EventRepository,
	publisher *rabbitmq.Publisher,
	availability *cache.Availability,
) EventService {
	return &eventService{
		txm:       txm,
		eventRepo: eventRepo,
		publisher: publisher,
		cache:     availability,
	}
}

func (s *eventService) Create(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if in.GeneralTotal < 0 || in.VipTotal < 0 {
		return nil, ErrInvalidQuantity
	}
	if in.GeneralTotal == 0 && in.VipTotal == 0 {
		return nil, ErrNoTicketCapacity
	}
	if !in.ScheduledAt.After(time.Now()) {
		return nil, ErrPastSchedule
	}

	event := &models.Event{
		Title:            in.Title,
		OrganizerID:      in.OrganizerID,
		ScheduledAt:      in.ScheduledAt,
		GeneralPrice:     in.GeneralPrice,
		VipPrice:         in.VipPrice,
		GeneralTotal:     in.GeneralTotal,
		GeneralAvailable: in.GeneralTotal,
		VipTotal:         in.VipTotal,
		VipAvailable:     in.VipTotal,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish("event.created", event)
	return event, nil
}

// Update edits the event under its row lock so capacity changes cannot race
// concurrent purchases. Shrinking a pool below its sold count is rejected;
// otherwise the availability moves by the same delta as the total, which
// keeps already-sold tickets accounted for.
func (s *eventService) Update(ctx context.Context, eventID uint, actorID string, in UpdateEventInput) (*models.Event, error) {
	var updated *models.Event
	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}
		if event.OrganizerID != actorID {
			return ErrNotAuthorized
		}

		if in.Title != nil {
			event.Title = *in.Title
		}
		if in.ScheduledAt != nil {
			if !in.ScheduledAt.After(time.Now()) {
				return ErrPastSchedule
			}
			event.ScheduledAt = *in.ScheduledAt
		}
		if in.GeneralPrice != nil {
			event.GeneralPrice = *in.GeneralPrice
		}
		if in.VipPrice != nil {
			event.VipPrice = *in.VipPrice
		}
		if in.GeneralTotal != nil {
			if *in.GeneralTotal < 0 {
				return ErrInvalidQuantity
			}
			if err := AdjustCapacity(event, models.TypeGeneral, *in.GeneralTotal); err != nil {
				return err
			}
		}
		if in.VipTotal != nil {
			if *in.VipTotal < 0 {
				return ErrInvalidQuantity
			}
			if err := AdjustCapacity(event, models.TypeVIP, *in.VipTotal); err != nil {
				return err
			}
		}
		if event.GeneralTotal == 0 && event.VipTotal == 0 {
			return ErrNoTicketCapacity
		}

		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Invalidate(ctx, eventID)
	_ = s.publisher.Publish("event.updated", updated)
	return updated, nil
}

func (s *eventService) Get(ctx context.Context, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

// Status serves the availability snapshot from Redis when present and falls
// back to the database on a miss, repopulating the cache on the way out.
func (s *eventService) Status(ctx context.Context, eventID uint) (*cache.Snapshot, error) {
	if snap, err := s.cache.Get(ctx, eventID); err == nil && snap != nil {
		return snap, nil
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	snap := cache.SnapshotFrom(event)
	_ = s.cache.Set(ctx, snap)
	return snap, nil
}
