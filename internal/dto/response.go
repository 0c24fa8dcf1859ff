package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tickethub/internal/models"
)

type ErrorResponse struct {
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type TicketResponse struct {
	ID               uint            `json:"id"`
	TicketCode       string          `json:"ticket_code"`
	UserID           string          `json:"user_id"`
	EventID          uint            `json:"event_id"`
	EventTitle       string          `json:"event_title,omitempty"`
	Type             string          `json:"type"`
	Quantity         int             `json:"quantity"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Taxes            decimal.Decimal `json:"taxes"`
	Total            decimal.Decimal `json:"total"`
	PaymentConfirmed bool            `json:"payment_confirmed"`
	IsUsed           bool            `json:"is_used"`
	CreatedAt        time.Time       `json:"created_at"`
}

func NewTicketResponse(t *models.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:               t.ID,
		TicketCode:       t.TicketCode,
		UserID:           t.UserID,
		EventID:          t.EventID,
		Type:             string(t.Type),
		Quantity:         t.Quantity,
		Subtotal:         t.Subtotal,
		Taxes:            t.Taxes,
		Total:            t.Total,
		PaymentConfirmed: t.PaymentConfirmed,
		IsUsed:           t.IsUsed,
		CreatedAt:        t.CreatedAt,
	}
	if t.Event != nil {
		resp.EventTitle = t.Event.Title
	}
	return resp
}

func NewTicketListResponse(tickets []models.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

type RefundResponse struct {
	ID         uint       `json:"id"`
	TicketCode string     `json:"ticket_code"`
	UserID     string     `json:"user_id"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewRefundResponse(r *models.RefundRequest) RefundResponse {
	status := "PENDING"
	if r.Approved != nil {
		if *r.Approved {
			status = "APPROVED"
		} else {
			status = "REJECTED"
		}
	}
	return RefundResponse{
		ID:         r.ID,
		TicketCode: r.TicketCode,
		UserID:     r.UserID,
		Reason:     string(r.Reason),
		Details:    r.Details,
		Status:     status,
		DecidedAt:  r.DecidedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func NewRefundListResponse(reqs []models.RefundRequest) []RefundResponse {
	out := make([]RefundResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, NewRefundResponse(&reqs[i]))
	}
	return out
}

type EventResponse struct {
	ID               uint            `json:"id"`
	Title            string          `json:"title"`
	OrganizerID      string          `json:"organizer_id"`
	ScheduledAt      time.Time       `json:"scheduled_at"`
	GeneralPrice     decimal.Decimal `json:"general_price"`
	VipPrice         decimal.Decimal `json:"vip_price"`
	GeneralTotal     int             `json:"general_total"`
	GeneralAvailable int             `json:"general_available"`
	VipTotal         int             `json:"vip_total"`
	VipAvailable     int             `json:"vip_available"`
	CreatedAt        time.Time       `json:"created_at"`
}

func NewEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		OrganizerID:      e.OrganizerID,
		ScheduledAt:      e.ScheduledAt,
		GeneralPrice:     e.GeneralPrice,
		VipPrice:         e.VipPrice,
		GeneralTotal:     e.GeneralTotal,
		GeneralAvailable: e.GeneralAvailable,
		VipTotal:         e.VipTotal,
		VipAvailable:     e.VipAvailable,
		CreatedAt:        e.CreatedAt,
	}
}

func NewEventListResponse(events []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}
