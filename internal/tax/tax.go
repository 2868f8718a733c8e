// Package tax computes VAT and ROT/RUT figures for invoice rows.
//
// All amounts are VAT-inclusive unless a name says otherwise. Nothing in
// this package rounds except ConvertPrice; formatting for display is left to
// the caller.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
)

// Direction selects which way ConvertPrice converts.
type Direction int

const (
	ToInclusive Direction = iota
	ToExclusive
)

var (
	rotCustomerShare = decimal.RequireFromString("0.7")
	rotReduction     = decimal.RequireFromString("0.3")
	rutCustomerShare = decimal.RequireFromString("0.5")
	rutReduction     = decimal.RequireFromString("0.5")
)

// ConvertPrice converts a unit price between VAT-inclusive and
// VAT-exclusive. Results with a fractional part are rounded to 2 decimals,
// integral results are returned unrounded.
func ConvertPrice(amount decimal.Decimal, vat model.VATRate, dir Direction) decimal.Decimal {
	var price decimal.Decimal
	if dir == ToInclusive {
		price = amount.Mul(vat.Multiplier())
	} else {
		price = amount.Div(vat.Multiplier())
	}
	if !price.Equal(price.Truncate(0)) {
		price = price.Round(2)
	}
	return price
}

// RowTax holds the derived figures for one row.
type RowTax struct {
	RowTotal       decimal.Decimal // Cost * Count
	CustomerPrice  decimal.Decimal // what the customer pays after ROT/RUT
	RotRutDiscount decimal.Decimal
	VATAmount      decimal.Decimal // VAT contained in RowTotal
}

// ComputeRowTax derives totals for item. ROT/RUT pricing only applies when
// the row is flagged, has a service type, and rotRutApplicable is set for
// the invoice. VAT is always taken from the full row total.
func ComputeRowTax(item model.LineItem, rotRutApplicable bool) RowTax {
	rowTotal := item.Total()
	unitPrice := item.Cost
	discount := decimal.Zero

	if rotRutApplicable {
		switch item.ServiceKind() {
		case model.ReductionROT:
			unitPrice = item.Cost.Mul(rotCustomerShare)
			discount = item.Cost.Mul(rotReduction).Mul(item.Count)
		case model.ReductionRUT:
			unitPrice = item.Cost.Mul(rutCustomerShare)
			discount = item.Cost.Mul(rutReduction).Mul(item.Count)
		}
	}

	return RowTax{
		RowTotal:       rowTotal,
		CustomerPrice:  unitPrice.Mul(item.Count),
		RotRutDiscount: discount,
		VATAmount:      rowTotal.Sub(rowTotal.Div(item.VAT.Multiplier())),
	}
}
