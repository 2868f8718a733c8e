package rowedit

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/tax"
)

// PriceField names one of the two price inputs of the dialog.
type PriceField int

const (
	PriceInclusive PriceField = iota
	PriceExclusive
)

// CounterPrice returns the value for the other price input after the user
// typed value into field. ok is false when value is not a number, in which
// case the other input is left alone.
func CounterPrice(field PriceField, value string, vat model.VATRate) (string, bool) {
	price, ok := ParseAmount(value)
	if !ok {
		return "", false
	}
	dir := tax.ToInclusive
	if field == PriceInclusive {
		dir = tax.ToExclusive
	}
	return tax.ConvertPrice(price, vat, dir).String(), true
}

// ParseAmount reads a number as typed into the dialog. Comma and period
// are both decimal separators and spaces are ignored. ok is false for
// empty or non-numeric input.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = commaPeriod.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
