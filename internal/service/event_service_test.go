package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"tickethub/internal/models"
)

func newEventSvc(eventRepo *mockEventRepo) EventService {
	return NewEventService(fakeTxManager{}, eventRepo, nil, nil)
}

func createInput() CreateEventInput {
	return CreateEventInput{
		Title:        "Jazz Night",
		OrganizerID:  "org-1",
		ScheduledAt:  time.Now().Add(30 * 24 * time.Hour),
		GeneralPrice: decimal.RequireFromString("50.00"),
		VipPrice:     decimal.RequireFromString("120.00"),
		GeneralTotal: 100,
		VipTotal:     20,
	}
}

func TestCreateEvent(t *testing.T) {
	eventRepo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			return nil
		},
	}

	svc := newEventSvc(eventRepo)
	event, err := svc.Create(context.Background(), createInput())

	assert.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)
	assert.Equal(t, 100, event.GeneralAvailable, "pools open full")
	assert.Equal(t, 20, event.VipAvailable)
}

func TestCreateEvent_NoCapacity(t *testing.T) {
	in := createInput()
	in.GeneralTotal = 0
	in.VipTotal = 0

	svc := newEventSvc(&mockEventRepo{})
	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, ErrNoTicketCapacity)
}

func TestCreateEvent_PastSchedule(t *testing.T) {
	in := createInput()
	in.ScheduledAt = time.Now().Add(-time.Hour)

	svc := newEventSvc(&mockEventRepo{})
	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, ErrPastSchedule)
}

func TestCreateEvent_SingleClassOK(t *testing.T) {
	in := createInput()
	in.VipTotal = 0
	eventRepo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error { return nil },
	}

	svc := newEventSvc(eventRepo)
	event, err := svc.Create(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, 0, event.VipAvailable)
}

func TestUpdateEvent_Capacity(t *testing.T) {
	event := sampleEvent()
	event.GeneralAvailable = 40 // 60 sold
	eventRepo := &mockEventRepo{
		findByIDUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
			return event, nil
		},
	}

	newTotal := 150
	svc := newEventSvc(eventRepo)
	updated, err := svc.Update(context.Background(), 1, "org-1", UpdateEventInput{
		GeneralTotal: &newTotal,
	})

	assert.NoError(t, err)
	assert.Equal(t, 150, updated.GeneralTotal)
	assert.Equal(t, 90, updated.GeneralAvailable, "sold count preserved")
}

func TestUpdateEvent_ShrinkBelowSold(t *testing.T) {
	event := sampleEvent()
	event.GeneralAvailable = 40 // 60 sold
	eventRepo := &mockEventRepo{
		findByIDUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
			return event, nil
		},
	}

	newTotal := 50
	svc := newEventSvc(eventRepo)
	_, err := svc.Update(context.Background(), 1, "org-1", UpdateEventInput{
		GeneralTotal: &newTotal,
	})

	assert.ErrorIs(t, err, ErrCapacityBelowSold)
}

func TestUpdateEvent_NotOrganizer(t *testing.T) {
	event := sampleEvent()
	eventRepo := &mockEventRepo{
		findByIDUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
			return event, nil
		},
	}

	title := "Renamed"
	svc := newEventSvc(eventRepo)
	_, err := svc.Update(context.Background(), 1, "user-1", UpdateEventInput{Title: &title})

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUpdateEvent_PartialFieldsOnly(t *testing.T) {
	event := sampleEvent()
	eventRepo := &mockEventRepo{
		findByIDUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
			return event, nil
		},
	}

	price := decimal.RequireFromString("65.00")
	svc := newEventSvc(eventRepo)
	updated, err := svc.Update(context.Background(), 1, "org-1", UpdateEventInput{
		GeneralPrice: &price,
	})

	assert.NoError(t, err)
	assert.True(t, updated.GeneralPrice.Equal(price))
	assert.Equal(t, "Jazz Night", updated.Title, "unset fields untouched")
	assert.Equal(t, 100, updated.GeneralTotal)
}

func TestStatus_FallsBackToDatabase(t *testing.T) {
	event := sampleEvent()
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return event, nil
		},
	}

	svc := newEventSvc(eventRepo)
	snap, err := svc.Status(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), snap.EventID)
	assert.Equal(t, 100, snap.GeneralAvailable)
	assert.Equal(t, 20, snap.VipAvailable)
}

func TestStatus_UnknownEvent(t *testing.T) {
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newEventSvc(eventRepo)
	_, err := svc.Status(context.Background(), 99)

	assert.ErrorIs(t, err, ErrEventNotFound)
}
