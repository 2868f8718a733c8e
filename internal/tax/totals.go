package tax

import (
	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
)

// Amount is a total together with whether it should be shown.
type Amount struct {
	Value   decimal.Decimal
	Visible bool
}

func amount(v decimal.Decimal) Amount {
	return Amount{Value: v, Visible: !v.IsZero()}
}

// Total names, in display order.
const (
	TotalInclusive = "total-incl"
	TotalVAT25     = "total-vat-25"
	TotalVAT12     = "total-vat-12"
	TotalVAT6      = "total-vat-6"
	TotalRotRut    = "total-rot-rut"
	TotalCustomer  = "total-customer"
)

// Totals aggregates a set of rows. The 0 % bracket carries no VAT and is
// not tracked.
type Totals struct {
	Inclusive      Amount
	VAT25          Amount
	VAT12          Amount
	VAT6           Amount
	RotRutDiscount Amount
	CustomerPrice  Amount

	// Exclusive is Inclusive minus all VAT. Not part of the display set.
	Exclusive decimal.Decimal
}

// NamedTotal is one entry of Totals.Named.
type NamedTotal struct {
	Name string
	Amount
}

// Named returns the six displayed totals in display order.
func (t Totals) Named() []NamedTotal {
	return []NamedTotal{
		{TotalInclusive, t.Inclusive},
		{TotalVAT25, t.VAT25},
		{TotalVAT12, t.VAT12},
		{TotalVAT6, t.VAT6},
		{TotalRotRut, t.RotRutDiscount},
		{TotalCustomer, t.CustomerPrice},
	}
}

// ComputeTotals sums ComputeRowTax over every row in items, including any
// the caller considers deleted. Use Ledger.Totals for the totals of an
// invoice's active rows.
func ComputeTotals(items []model.LineItem, rotRutApplicable bool) Totals {
	incl := decimal.Zero
	customer := decimal.Zero
	discount := decimal.Zero
	vat := map[model.VATRate]decimal.Decimal{}

	for _, item := range items {
		rt := ComputeRowTax(item, rotRutApplicable)
		incl = incl.Add(rt.RowTotal)
		customer = customer.Add(rt.CustomerPrice)
		discount = discount.Add(rt.RotRutDiscount)
		vat[item.VAT] = vat[item.VAT].Add(rt.VATAmount)
	}

	allVAT := vat[model.VAT25].Add(vat[model.VAT12]).Add(vat[model.VAT6])
	return Totals{
		Inclusive:      amount(incl),
		VAT25:          amount(vat[model.VAT25]),
		VAT12:          amount(vat[model.VAT12]),
		VAT6:           amount(vat[model.VAT6]),
		RotRutDiscount: amount(discount),
		CustomerPrice:  amount(customer),
		Exclusive:      incl.Sub(allVAT),
	}
}
