package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/tax"
)

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, name string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, name, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestWorkbook(t *testing.T) {
	rows := []model.LineItem{
		{
			ID: 1, Description: "Elarbete", Cost: decimal.NewFromInt(650), Count: decimal.NewFromInt(3),
			Unit: model.UnitHours, VAT: model.VAT25, IsRotRut: true, RotRutServiceType: model.ServicePtr(model.ServiceEl),
		},
		{
			ID: 2, Description: "Material", Cost: decimal.NewFromInt(200), Count: decimal.NewFromInt(3),
			Unit: model.UnitPiece, VAT: model.VAT25,
		},
	}

	data, err := Workbook(rows, tax.ComputeTotals(rows, true))
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	header, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.NotEmpty(t, header)
	assert.Equal(t, Header, header[0])

	assert.Equal(t, "Elarbete", cell(t, f, "A2"))
	assert.Equal(t, "650", cell(t, f, "B2"))
	assert.Equal(t, "timmar", cell(t, f, "D2"))
	assert.Equal(t, "1950", cell(t, f, "E2"))
	assert.Equal(t, "25 %", cell(t, f, "F2"))
	assert.Equal(t, "ROT", cell(t, f, "G2"))
	assert.Equal(t, "", cell(t, f, "G3"))

	// Row 4 is blank; visible totals follow. 12 % and 6 % are zero and hidden.
	assert.Equal(t, "Totalt inkl. moms", cell(t, f, "D5"))
	assert.Equal(t, "2550", cell(t, f, "E5"))
	assert.Equal(t, "Varav moms 25 %", cell(t, f, "D6"))
	assert.Equal(t, "510", cell(t, f, "E6"))
	assert.Equal(t, "Avgår ROT/RUT", cell(t, f, "D7"))
	assert.Equal(t, "585", cell(t, f, "E7"))
	assert.Equal(t, "Att betala", cell(t, f, "D8"))
	assert.Equal(t, "1965", cell(t, f, "E8"))
	assert.Equal(t, "", cell(t, f, "D9"))
}

func TestWorkbookEmpty(t *testing.T) {
	data, err := Workbook(nil, tax.ComputeTotals(nil, false))
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}
