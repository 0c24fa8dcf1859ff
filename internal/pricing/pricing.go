// Package pricing derives the amounts charged for a ticket purchase.
// All arithmetic is fixed-point; binary floats would drift on tax splits.
package pricing

import "github.com/shopspring/decimal"

// TaxRate is applied on top of the subtotal.
var TaxRate = decimal.RequireFromString("0.10")

type Quote struct {
	Subtotal decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
}

func Compute(unitPrice decimal.Decimal, quantity int) Quote {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	taxes := subtotal.Mul(TaxRate).Round(2)
	return Quote{
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    subtotal.Add(taxes),
	}
}
