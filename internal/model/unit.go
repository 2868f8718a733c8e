package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is the quantity unit of an invoice row.
type Unit int

const (
	UnitNone Unit = iota
	UnitPiece
	UnitHours
	UnitDays
)

var unitLabels = map[Unit]string{
	UnitNone:  "-",
	UnitPiece: "st",
	UnitHours: "timmar",
	UnitDays:  "dagar",
}

// Units lists every unit in form order.
var Units = []Unit{UnitNone, UnitPiece, UnitHours, UnitDays}

// ParseUnit looks up a unit by its label. An empty string is UnitNone.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UnitNone, nil
	}
	for _, u := range Units {
		if u.String() == s {
			return u, nil
		}
	}
	return UnitNone, fmt.Errorf("unknown unit %q", s)
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

// String returns the Swedish unit label, e.g. "timmar".
func (u Unit) String() string {
	return unitLabels[u]
}

// VATRate is one of the statutory VAT brackets. The numeric values are the
// codes used by the invoice form, not percentages.
type VATRate int

const (
	VAT25 VATRate = iota
	VAT12
	VAT6
	VAT0
)

var vatLabels = map[VATRate]string{
	VAT25: "25 %",
	VAT12: "12 %",
	VAT6:  "6 %",
	VAT0:  "0 %",
}

var vatFractions = map[VATRate]decimal.Decimal{
	VAT25: decimal.RequireFromString("0.25"),
	VAT12: decimal.RequireFromString("0.12"),
	VAT6:  decimal.RequireFromString("0.06"),
	VAT0:  decimal.Zero,
}

// VATRates lists every bracket in form order.
var VATRates = []VATRate{VAT25, VAT12, VAT6, VAT0}

// ParseVATRate looks up a bracket by percentage, e.g. "25", "25%" or "25 %".
func ParseVATRate(s string) (VATRate, error) {
	pct := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	for _, v := range VATRates {
		if v.String() == pct+" %" {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown VAT rate %q", s)
}

// Valid reports whether v is a known VAT bracket.
func (v VATRate) Valid() bool {
	_, ok := vatLabels[v]
	return ok
}

// String returns the display label, e.g. "25 %".
func (v VATRate) String() string {
	return vatLabels[v]
}

// Fraction returns the rate as a fraction, 25 % -> 0.25.
// Unknown brackets yield zero.
func (v VATRate) Fraction() decimal.Decimal {
	return vatFractions[v]
}

// Multiplier returns 1 + Fraction().
func (v VATRate) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(v.Fraction())
}
