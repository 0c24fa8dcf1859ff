package service

import "tickethub/internal/models"

const (
	// MaxTicketsPerEvent caps a user's confirmed tickets per event,
	// across all their purchases.
	MaxTicketsPerEvent = 4
	// MaxVIPPerPurchase caps VIP quantity per single transaction. It is
	// not cumulative.
	MaxVIPPerPurchase = 2
)

// CheckPurchase is the purchase limiter: a pure, read-only check. Callers
// must run it inside the same transaction as the reservation, with
// alreadyOwned computed under the event row lock, or two racing purchases
// could both pass.
func CheckPurchase(alreadyOwned int, class models.TicketType, qty int) error {
	if alreadyOwned+qty > MaxTicketsPerEvent {
		return ErrTotalCapExceeded
	}
	if class == models.TypeVIP && qty > MaxVIPPerPurchase {
		return ErrVipCapExceeded
	}
	return nil
}
