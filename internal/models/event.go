package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TypeGeneral TicketType = "GENERAL"
	TypeVIP     TicketType = "VIP"
)

func (t TicketType) Valid() bool {
	return t == TypeGeneral || t == TypeVIP
}

// Event carries two independent ticket pools. The available counters are
// mutated only inside transactions that hold the event row lock; reading them
// outside a transaction (availability displays) is a deliberate dirty read.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	OrganizerID string    `gorm:"not null;index" json:"organizer_id"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`

	GeneralPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"general_price"`
	VipPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"vip_price"`

	GeneralTotal     int `gorm:"not null" json:"general_total"`
	GeneralAvailable int `gorm:"not null" json:"general_available"`
	VipTotal         int `gorm:"not null" json:"vip_total"`
	VipAvailable     int `gorm:"not null" json:"vip_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) Available(t TicketType) int {
	if t == TypeVIP {
		return e.VipAvailable
	}
	return e.GeneralAvailable
}

func (e *Event) Total(t TicketType) int {
	if t == TypeVIP {
		return e.VipTotal
	}
	return e.GeneralTotal
}

func (e *Event) Price(t TicketType) decimal.Decimal {
	if t == TypeVIP {
		return e.VipPrice
	}
	return e.GeneralPrice
}

func (e *Event) SetAvailable(t TicketType, n int) {
	if t == TypeVIP {
		e.VipAvailable = n
		return
	}
	e.GeneralAvailable = n
}

func (e *Event) SetTotal(t TicketType, n int) {
	if t == TypeVIP {
		e.VipTotal = n
		return
	}
	e.GeneralTotal = n
}
