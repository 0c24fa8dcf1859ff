package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tickethub/internal/models"
	"tickethub/internal/payment"
)

type CardDetails struct {
	Type   string `json:"type"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Holder string `json:"holder"`
}

func (c CardDetails) ToCard() payment.Card {
	return payment.Card{
		Type:   c.Type,
		Number: c.Number,
		Expiry: c.Expiry,
		CVV:    c.CVV,
		Holder: c.Holder,
	}
}

func (c CardDetails) validate(errs map[string]string) {
	if strings.TrimSpace(c.Number) == "" {
		errs["card.number"] = "card number is required"
	}
	if strings.TrimSpace(c.Expiry) == "" {
		errs["card.expiry"] = "card expiry is required"
	}
	if strings.TrimSpace(c.CVV) == "" {
		errs["card.cvv"] = "card cvv is required"
	}
}

type PurchaseTicketRequest struct {
	UserID   string      `json:"user_id"`
	Type     string      `json:"type"`
	Quantity int         `json:"quantity"`
	Card     CardDetails `json:"card"`
}

func (r PurchaseTicketRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.UserID) == "" {
		errs["user_id"] = "user_id is required"
	}
	if !models.TicketType(r.Type).Valid() {
		errs["type"] = "type must be GENERAL or VIP"
	}
	if r.Quantity < 1 {
		errs["quantity"] = "quantity must be at least 1"
	}
	r.Card.validate(errs)
	return errs
}

type UpdateTicketRequest struct {
	UserID   string `json:"user_id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

func (r UpdateTicketRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.UserID) == "" {
		errs["user_id"] = "user_id is required"
	}
	if !models.TicketType(r.Type).Valid() {
		errs["type"] = "type must be GENERAL or VIP"
	}
	if r.Quantity < 1 {
		errs["quantity"] = "quantity must be at least 1"
	}
	return errs
}

type MarkUsedRequest struct {
	OrganizerID string `json:"organizer_id"`
}

func (r MarkUsedRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.OrganizerID) == "" {
		errs["organizer_id"] = "organizer_id is required"
	}
	return errs
}

type CreateRefundRequest struct {
	UserID     string `json:"user_id"`
	TicketCode string `json:"ticket_code"`
	Reason     string `json:"reason"`
	Details    string `json:"details"`
}

func (r CreateRefundRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.UserID) == "" {
		errs["user_id"] = "user_id is required"
	}
	if strings.TrimSpace(r.TicketCode) == "" {
		errs["ticket_code"] = "ticket_code is required"
	}
	if !models.RefundReason(r.Reason).Valid() {
		errs["reason"] = "reason must be EVENT_CHANGED, CANT_ATTEND or OTHER"
	}
	return errs
}

type RefundDecisionRequest struct {
	OrganizerID string `json:"organizer_id"`
	Decision    string `json:"decision"`
}

func (r RefundDecisionRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.OrganizerID) == "" {
		errs["organizer_id"] = "organizer_id is required"
	}
	if r.Decision != "APPROVE" && r.Decision != "REJECT" {
		errs["decision"] = "decision must be APPROVE or REJECT"
	}
	return errs
}

func (r RefundDecisionRequest) Approve() bool {
	return r.Decision == "APPROVE"
}

type CreateEventRequest struct {
	Title        string          `json:"title"`
	OrganizerID  string          `json:"organizer_id"`
	ScheduledAt  time.Time       `json:"scheduled_at"`
	GeneralPrice decimal.Decimal `json:"general_price"`
	VipPrice     decimal.Decimal `json:"vip_price"`
	GeneralTotal int             `json:"general_total"`
	VipTotal     int             `json:"vip_total"`
}

func (r CreateEventRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(r.OrganizerID) == "" {
		errs["organizer_id"] = "organizer_id is required"
	}
	if r.ScheduledAt.IsZero() {
		errs["scheduled_at"] = "scheduled_at is required"
	}
	if r.GeneralPrice.IsNegative() || r.VipPrice.IsNegative() {
		errs["general_price"] = "prices cannot be negative"
	}
	if r.GeneralTotal < 0 || r.VipTotal < 0 {
		errs["general_total"] = "ticket totals cannot be negative"
	}
	return errs
}

type UpdateEventRequest struct {
	OrganizerID  string           `json:"organizer_id"`
	Title        *string          `json:"title"`
	ScheduledAt  *time.Time       `json:"scheduled_at"`
	GeneralPrice *decimal.Decimal `json:"general_price"`
	VipPrice     *decimal.Decimal `json:"vip_price"`
	GeneralTotal *int             `json:"general_total"`
	VipTotal     *int             `json:"vip_total"`
}

func (r UpdateEventRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.OrganizerID) == "" {
		errs["organizer_id"] = "organizer_id is required"
	}
	if r.GeneralPrice != nil && r.GeneralPrice.IsNegative() {
		errs["general_price"] = "prices cannot be negative"
	}
	if r.VipPrice != nil && r.VipPrice.IsNegative() {
		errs["vip_price"] = "prices cannot be negative"
	}
	return errs
}
