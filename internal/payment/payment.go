// Package payment holds the external money-movement collaborators. The core
// never inspects card details beyond passing them through; format validation
// is the processor's problem.
package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrCardDeclined     = errors.New("card declined by issuing bank")
	ErrReversalRejected = errors.New("payment reversal rejected by processor")
)

type Card struct {
	Type   string
	Number string
	Expiry string
	CVV    string
	Holder string
}

type Authorizer interface {
	Authorize(ctx context.Context, card Card, amount decimal.Decimal) error
}

type Reverser interface {
	Reverse(ctx context.Context, chargeRef string, amount decimal.Decimal) error
}

// Gateway is the deterministic stand-in used until a real PSP is wired in.
// Card numbers ending in 1111 are declined, mirroring the sandbox convention
// of the upstream processor.
type Gateway struct {
	// FailReversals makes every Reverse call fail. Test hook for the
	// refund-approval failure path.
	FailReversals bool
}

func NewGateway() *Gateway {
	return &Gateway{}
}

func (g *Gateway) Authorize(ctx context.Context, card Card, amount decimal.Decimal) error {
	number := strings.ReplaceAll(card.Number, " ", "")
	if strings.HasSuffix(number, "1111") {
		return ErrCardDeclined
	}
	return nil
}

func (g *Gateway) Reverse(ctx context.Context, chargeRef string, amount decimal.Decimal) error {
	if g.FailReversals {
		return ErrReversalRejected
	}
	return nil
}
