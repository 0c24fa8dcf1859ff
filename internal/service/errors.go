package service

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrRefundNotFound = errors.New("refund request not found")

	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("not enough tickets available")
	ErrTotalCapExceeded  = errors.New("cannot hold more than 4 tickets for this event")
	ErrVipCapExceeded    = errors.New("cannot buy more than 2 VIP tickets in one purchase")

	ErrPaymentDeclined  = errors.New("payment declined")
	ErrEditWindowClosed = errors.New("ticket can no longer be modified")
	ErrTicketRefunded   = errors.New("ticket has been refunded")

	ErrNotOwner      = errors.New("ticket does not belong to this user")
	ErrNotAuthorized = errors.New("not authorized")

	ErrTicketAlreadyUsed = errors.New("ticket has already been used")

	ErrRefundAlreadyProcessed = errors.New("an approved refund already exists for this ticket")
	ErrRefundAlreadyPending   = errors.New("a pending refund already exists for this ticket")
	ErrUserHasPendingRefund   = errors.New("user already has a pending refund request")
	ErrEventAlreadyOccurred   = errors.New("event has already occurred")
	ErrTooCloseToEvent        = errors.New("refunds close 48 hours before the event")
	ErrDetailsRequired        = errors.New("details are required when the reason is OTHER")
	ErrInvalidRefundReason    = errors.New("unknown refund reason")
	ErrRefundAlreadyDecided   = errors.New("refund request was already decided")
	ErrRefundReversalFailed   = errors.New("payment reversal failed, request was rejected")

	// ErrInventoryInvariant marks a bookkeeping fault (a release that would
	// push available past total). It is reported, never papered over.
	ErrInventoryInvariant = errors.New("inventory fault: available would exceed total")
	ErrCapacityBelowSold  = errors.New("new capacity is below tickets already sold")

	ErrNoTicketCapacity = errors.New("event must have at least one ticket in some class")
	ErrPastSchedule     = errors.New("event cannot be scheduled in the past")
)
