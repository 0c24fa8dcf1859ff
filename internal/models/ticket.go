package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is a confirmed purchase. An approved refund voids the ticket
// (PaymentConfirmed goes false) instead of deleting it, so refund history
// keeps a record to point at.
type Ticket struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TicketCode string     `gorm:"uniqueIndex;not null" json:"ticket_code"`
	UserID     string     `gorm:"not null;index" json:"user_id"`
	EventID    uint       `gorm:"not null;index" json:"event_id"`
	Type       TicketType `gorm:"type:varchar(10);not null" json:"type"`
	Quantity   int        `gorm:"not null" json:"quantity"`

	Subtotal decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Taxes    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"taxes"`
	Total    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`

	PaymentConfirmed bool `gorm:"not null;default:false" json:"payment_confirmed"`
	IsUsed           bool `gorm:"not null;default:false" json:"is_used"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// NewTicketCode builds the event-prefixed code printed on the ticket,
// e.g. "EVT42-9F1C03AB".
func NewTicketCode(eventID uint) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("EVT%d-%s", eventID, suffix)
}
