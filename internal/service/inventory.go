package service

import (
	"log"

	"tickethub/internal/models"
	"tickethub/monitoring"
)

// The inventory ledger mutates an event's per-class counters in memory; the
// caller persists the event afterwards. Correctness depends on the caller
// holding the event row lock for the whole transaction (FindByIDForUpdate),
// which serializes every check-then-mutate sequence on the same event.

// ReserveStock takes qty tickets out of the pool, or fails with
// ErrInsufficientStock leaving the event untouched.
func ReserveStock(event *models.Event, class models.TicketType, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	available := event.Available(class)
	if available < qty {
		return ErrInsufficientStock
	}
	event.SetAvailable(class, available-qty)
	return nil
}

// ReleaseStock returns qty tickets to the pool. Overshooting total means some
// earlier mutation was double-counted; that is a fault to surface, not clamp.
func ReleaseStock(event *models.Event, class models.TicketType, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	next := event.Available(class) + qty
	if total := event.Total(class); next > total {
		log.Printf("inventory fault: event %d class %s release of %d would put available at %d of %d total",
			event.ID, class, qty, next, total)
		monitoring.InventoryFault()
		return ErrInventoryInvariant
	}
	event.SetAvailable(class, next)
	return nil
}

// AdjustCapacity changes a class's total while preserving the sold delta:
// available moves by the same amount as total. Shrinking below what is
// already sold is rejected.
func AdjustCapacity(event *models.Event, class models.TicketType, newTotal int) error {
	if newTotal < 0 {
		return ErrInvalidQuantity
	}
	next := event.Available(class) + (newTotal - event.Total(class))
	if next < 0 {
		return ErrCapacityBelowSold
	}
	event.SetTotal(class, newTotal)
	event.SetAvailable(class, next)
	return nil
}
