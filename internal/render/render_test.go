package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/tax"
)

func TestRow(t *testing.T) {
	tests := []struct {
		name string
		item model.LineItem
		want RowView
	}{
		{
			name: "hours with rot",
			item: model.LineItem{
				ID: 4, Description: "Elarbete", Cost: decimal.NewFromInt(650), Count: decimal.NewFromInt(3),
				Unit: model.UnitHours, VAT: model.VAT25, IsRotRut: true, RotRutServiceType: model.ServicePtr(model.ServiceEl),
			},
			want: RowView{ID: 4, Description: "Elarbete", Cost: "650.00", Count: "3 timmar", Total: "1950.00", VAT: "25 %", IsRotRut: true},
		},
		{
			name: "no unit",
			item: model.LineItem{
				ID: -1, Description: "Frakt", Cost: decimal.RequireFromString("99.5"), Count: decimal.RequireFromString("1.5"),
				Unit: model.UnitNone, VAT: model.VAT6,
			},
			want: RowView{ID: -1, Description: "Frakt", Cost: "99.50", Count: "1.5", Total: "149.25", VAT: "6 %"},
		},
		{
			name: "pieces",
			item: model.LineItem{
				ID: 2, Description: "Skruv", Cost: decimal.RequireFromString("0.333"), Count: decimal.NewFromInt(100),
				Unit: model.UnitPiece, VAT: model.VAT0,
			},
			want: RowView{ID: 2, Description: "Skruv", Cost: "0.33", Count: "100 st", Total: "33.30", VAT: "0 %"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Row(tt.item))
		})
	}
}

func TestTotals(t *testing.T) {
	items := []model.LineItem{
		{ID: 1, Description: "a", Cost: decimal.NewFromInt(125), Count: decimal.NewFromInt(2), VAT: model.VAT25},
	}
	views := Totals(tax.ComputeTotals(items, true))
	require.Len(t, views, 6)

	assert.Equal(t, TotalView{Name: tax.TotalInclusive, Label: "Totalt inkl. moms", Value: "250.00", Visible: true}, views[0])
	assert.Equal(t, "50.00", views[1].Value)
	assert.True(t, views[1].Visible)
	assert.Equal(t, "0.00", views[2].Value)
	assert.False(t, views[2].Visible)
	assert.False(t, views[4].Visible)
	assert.Equal(t, "250.00", views[5].Value)
}

func TestSwedishCalendar(t *testing.T) {
	d := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Måndag 3 Mars 2025", Swedish.LongDate(d))
	assert.Equal(t, 1, Swedish.FirstDay)
	assert.Len(t, Swedish.MonthNamesShort, 12)

	got, err := Swedish.ParseDate("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, time.December, got.Month())

	_, err = Swedish.ParseDate("24/12/2025")
	assert.Error(t, err)
}
