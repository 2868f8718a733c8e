// Package render turns rows and totals into the strings shown in the invoice
// row table.
package render

import (
	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/tax"
)

// RowView is one rendered table row.
type RowView struct {
	ID          int
	Description string
	Cost        string // unit price, 2 decimals
	Count       string // count with unit label, e.g. "3 timmar"
	Total       string // 2 decimals
	VAT         string // "25 %"
	IsRotRut    bool   // shows the tax-reduction marker
}

// Row renders item.
func Row(item model.LineItem) RowView {
	count := item.Count.String()
	if item.Unit != model.UnitNone && item.Unit.Valid() {
		count += " " + item.Unit.String()
	}
	return RowView{
		ID:          item.ID,
		Description: item.Description,
		Cost:        Money(item.Cost),
		Count:       count,
		Total:       Money(item.Total()),
		VAT:         item.VAT.String(),
		IsRotRut:    item.IsRotRut,
	}
}

// Rows renders items in order.
func Rows(items []model.LineItem) []RowView {
	out := make([]RowView, len(items))
	for i, item := range items {
		out[i] = Row(item)
	}
	return out
}

// TotalView is one rendered total. Hidden totals are still returned so the
// view can toggle them.
type TotalView struct {
	Name    string
	Label   string
	Value   string
	Visible bool
}

var totalLabels = map[string]string{
	tax.TotalInclusive: "Totalt inkl. moms",
	tax.TotalVAT25:     "Varav moms 25 %",
	tax.TotalVAT12:     "Varav moms 12 %",
	tax.TotalVAT6:      "Varav moms 6 %",
	tax.TotalRotRut:    "Avgår ROT/RUT",
	tax.TotalCustomer:  "Att betala",
}

// Totals renders the six display totals in order.
func Totals(t tax.Totals) []TotalView {
	named := t.Named()
	out := make([]TotalView, len(named))
	for i, n := range named {
		out[i] = TotalView{
			Name:    n.Name,
			Label:   totalLabels[n.Name],
			Value:   Money(n.Value),
			Visible: n.Visible,
		}
	}
	return out
}

// Money formats an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
