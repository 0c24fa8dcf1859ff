package models

import "time"

type RefundReason string

const (
	ReasonEventChanged RefundReason = "EVENT_CHANGED"
	ReasonCantAttend   RefundReason = "CANT_ATTEND"
	ReasonOther        RefundReason = "OTHER"
)

func (r RefundReason) Valid() bool {
	switch r {
	case ReasonEventChanged, ReasonCantAttend, ReasonOther:
		return true
	}
	return false
}

// RefundRequest references its ticket by code, not by row id. The code is a
// weak reference: deleting a ticket must not cascade into refund history.
// Approved is three-valued: nil while pending, then a terminal true/false.
type RefundRequest struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	TicketCode string       `gorm:"not null;index" json:"ticket_code"`
	UserID     string       `gorm:"not null;index" json:"user_id"`
	Reason     RefundReason `gorm:"type:varchar(20);not null" json:"reason"`
	Details    string       `json:"details,omitempty"`

	Approved  *bool      `json:"approved"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RefundRequest) Pending() bool {
	return r.Approved == nil
}

func (r *RefundRequest) Approve(now time.Time) {
	v := true
	r.Approved = &v
	r.DecidedAt = &now
}

func (r *RefundRequest) Reject(now time.Time) {
	v := false
	r.Approved = &v
	r.DecidedAt = &now
}
