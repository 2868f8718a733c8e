package rowio

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleRows() []model.LineItem {
	return []model.LineItem{
		{
			ID: 3, RowOrder: 0, Description: "Elinstallation", Cost: dec("650"), Count: dec("3"),
			Unit: model.UnitHours, VAT: model.VAT25, IsRotRut: true, RotRutServiceType: model.ServicePtr(model.ServiceEl),
		},
		{
			ID: -1, RowOrder: 1, Description: "Kabel, 10 m", Cost: dec("129.5"), Count: dec("2"),
			Unit: model.UnitPiece, VAT: model.VAT25,
		},
	}
}

func assertSameRows(t *testing.T, want, got []model.LineItem) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].RowOrder, got[i].RowOrder)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.True(t, want[i].Cost.Equal(got[i].Cost), "cost row %d", i)
		assert.True(t, want[i].Count.Equal(got[i].Count), "count row %d", i)
		assert.Equal(t, want[i].Unit, got[i].Unit)
		assert.Equal(t, want[i].VAT, got[i].VAT)
		assert.Equal(t, want[i].IsRotRut, got[i].IsRotRut)
		assert.Equal(t, want[i].RotRutServiceType, got[i].RotRutServiceType)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	deleted := model.LineItem{ID: 4, Description: "Frakt", Cost: dec("99"), Count: dec("1"), VAT: model.VAT6}
	d := Draft{Active: sampleRows(), Deleted: []model.LineItem{deleted}}

	var buf bytes.Buffer
	require.NoError(t, WriteDraft(&buf, d))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, Header, lines[0])
	assert.True(t, strings.HasSuffix(lines[3], ","+StateDeleted))

	got, err := ReadDraft(&buf)
	require.NoError(t, err)
	assertSameRows(t, d.Active, got.Active)
	assertSameRows(t, d.Deleted, got.Deleted)
}

func TestReadDraftFile(t *testing.T) {
	f, err := os.Open("../../testdata/rows.csv")
	require.NoError(t, err)
	defer f.Close()

	d, err := ReadDraft(f)
	require.NoError(t, err)
	assertSameRows(t, sampleRows(), d.Active)
	require.Len(t, d.Deleted, 1)
	assert.Equal(t, 4, d.Deleted[0].ID)

	l, err := d.Ledger()
	require.NoError(t, err)
	assert.Equal(t, []int{4}, l.Deleted())
	assert.Equal(t, -2, l.NextTemporaryID())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteDraftReportsWriteError(t *testing.T) {
	err := WriteDraft(failWriter{}, Draft{Active: sampleRows()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestReadDraftEmpty(t *testing.T) {
	d, err := ReadDraft(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, d.Active)
	assert.Empty(t, d.Deleted)
}

func TestReadDraftBadRow(t *testing.T) {
	in := Header + "\n" + "x,0,a,1,1,0,0,false,,\n"
	_, err := ReadDraft(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing id")
}

func TestUnmarshalRowFieldCount(t *testing.T) {
	_, err := UnmarshalRow([]string{"1", "2"})
	assert.Error(t, err)
}

func TestRecordJSON(t *testing.T) {
	rows := sampleRows()
	s, err := MarshalRecord(rows[0])
	require.NoError(t, err)
	assert.Contains(t, s, `"ID":3`)
	assert.Contains(t, s, `"rot_rut_service_type":1`)
	assert.Contains(t, s, `"total":"1950"`)

	s, err = MarshalRecord(model.LineItem{Description: "ny", Cost: dec("1"), Count: dec("1")})
	require.NoError(t, err)
	assert.NotContains(t, s, `"ID"`)
	assert.NotContains(t, s, "rot_rut_service_type")

	got, err := UnmarshalRecord(`{"ID":7,"description":"x","cost":"10.5","count":"2","unit":3,"vat":1,"is_rot_rut":false,"total":"999"}`)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, model.UnitDays, got.Unit)
	assert.Equal(t, model.VAT12, got.VAT)
	assert.Equal(t, "21", got.Total().String())
}

func TestFormRoundTrip(t *testing.T) {
	l, err := ledger.Restore(sampleRows(), []model.LineItem{{ID: 9, Description: "gammal", Cost: dec("1"), Count: dec("1")}})
	require.NoError(t, err)
	l.Reorder([]int{-1, 3})

	v, err := EncodeForm(l.Submission())
	require.NoError(t, err)
	assert.Len(t, v[KeyRow], 2)
	assert.Equal(t, []string{"9"}, v[KeyDeleteRow])
	assert.Equal(t, "[-1,3]", v.Get(KeyRowOrder))

	got, err := DecodeForm(v)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, got.Delete)
	assert.Equal(t, []int{-1, 3}, got.Order)
	assertSameRows(t, l.Rows(), got.Rows)
}

func TestEncodeFormEmpty(t *testing.T) {
	v, err := EncodeForm(ledger.Submission{})
	require.NoError(t, err)
	assert.Equal(t, "[]", v.Get(KeyRowOrder))
	assert.Empty(t, v[KeyRow])
	assert.Empty(t, v[KeyDeleteRow])
}

func TestDecodeFormErrors(t *testing.T) {
	_, err := DecodeForm(map[string][]string{KeyRow: {"{"}})
	assert.Error(t, err)
	_, err = DecodeForm(map[string][]string{KeyDeleteRow: {"abc"}})
	assert.Error(t, err)
	_, err = DecodeForm(map[string][]string{KeyRowOrder: {"[1,"}})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get("json"))
	assert.Nil(t, r.Get("xlsx"))

	p, err := r.ForPath("/tmp/import/rader.JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", p.Format())

	_, err = r.ForPath("rader.txt")
	assert.Error(t, err)

	assert.Panics(t, func() { r.Register(CSVParser{}) })
}

func TestJSONParserFile(t *testing.T) {
	data, err := os.ReadFile("../../testdata/rows.json")
	require.NoError(t, err)

	items, err := JSONParser{}.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, 12, items[0].ID)
	assert.Equal(t, model.ReductionROT, items[0].ServiceKind())
	assert.Equal(t, 0, items[1].ID)
	assert.Equal(t, "1559.6", items[1].Total().String())
	assert.Equal(t, model.ReductionRUT, items[2].ServiceKind())
}
