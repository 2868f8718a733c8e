package rowedit

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/model"
)

// fakeView records callbacks and serves canned dialog values.
type fakeView struct {
	values    url.Values
	added     []model.LineItem
	edited    []model.LineItem
	deleted   []int
	reordered [][]int
}

func (f *fakeView) FormValues() (url.Values, error) { return f.values, nil }
func (f *fakeView) OnAdd(item model.LineItem)       { f.added = append(f.added, item) }
func (f *fakeView) OnEdit(item model.LineItem)      { f.edited = append(f.edited, item) }
func (f *fakeView) OnDelete(rowID int)              { f.deleted = append(f.deleted, rowID) }
func (f *fakeView) OnReorder(ids []int)             { f.reordered = append(f.reordered, ids) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newSession(t *testing.T) (*Session, *fakeView) {
	t.Helper()
	l, err := ledger.New([]model.LineItem{
		{ID: 5, Description: "Material", Cost: decimal.NewFromInt(200), Count: decimal.NewFromInt(3), Unit: model.UnitPiece, VAT: model.VAT25},
		{ID: 6, Description: "Arbete", Cost: decimal.NewFromInt(600), Count: decimal.NewFromInt(8), Unit: model.UnitHours, VAT: model.VAT25,
			IsRotRut: true, RotRutServiceType: model.ServicePtr(model.ServiceEl)},
	})
	require.NoError(t, err)
	view := &fakeView{}
	return NewSession(l, view), view
}

func TestSessionAdd(t *testing.T) {
	s, view := newSession(t)
	require.NotEmpty(t, s.ID)

	f, err := s.OpenAdd()
	require.NoError(t, err)
	assert.Equal(t, Adding, s.State())
	assert.Equal(t, 0, f.ID)

	f.Description = "Tejp"
	f.Cost = decPtr("35")
	f.Count = decPtr("2")
	f.Unit = model.UnitPiece

	item, err := s.Submit(f)
	require.NoError(t, err)
	assert.Equal(t, -1, item.ID)
	assert.Equal(t, 2, item.RowOrder)
	assert.Equal(t, Closed, s.State())
	assert.Equal(t, 3, s.Ledger().Len())
	require.Len(t, view.added, 1)
	assert.Equal(t, "Tejp", view.added[0].Description)
}

func TestSessionEdit(t *testing.T) {
	s, view := newSession(t)

	f, err := s.OpenEdit(6)
	require.NoError(t, err)
	assert.Equal(t, Editing, s.State())
	assert.Equal(t, 6, s.EditingID())
	assert.Equal(t, "Arbete", f.Description)
	require.NotNil(t, f.ServiceType)
	assert.Equal(t, model.ServiceEl, *f.ServiceType)

	f.Count = decPtr("10")
	f.ID = 999 // ignored; the dialog edits row 6
	item, err := s.Submit(f)
	require.NoError(t, err)

	assert.Equal(t, 6, item.ID)
	assert.Equal(t, Closed, s.State())
	assert.Equal(t, []int{5, 6}, s.Ledger().Order())
	require.Len(t, view.edited, 1)
	got, _ := s.Ledger().Get(6)
	assert.True(t, got.Count.Equal(decimal.NewFromInt(10)))
}

func TestSessionEditRowLoadedWithoutID(t *testing.T) {
	l, err := ledger.New([]model.LineItem{
		{Description: "Handskriven", Cost: decimal.NewFromInt(100), Count: decimal.NewFromInt(1), Unit: model.UnitPiece, VAT: model.VAT25},
	})
	require.NoError(t, err)
	s := NewSession(l, &fakeView{})

	_, err = s.OpenEdit(0)
	assert.ErrorIs(t, err, ledger.ErrRowNotFound)

	rowID := l.Order()[0]
	f, err := s.OpenEdit(rowID)
	require.NoError(t, err)
	f.Count = decPtr("2")
	item, err := s.Submit(f)
	require.NoError(t, err)
	assert.Equal(t, rowID, item.ID)
	assert.Equal(t, Closed, s.State())
}

func TestSessionOpenEditUnknown(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.OpenEdit(42)
	assert.ErrorIs(t, err, ledger.ErrRowNotFound)
	assert.Equal(t, Closed, s.State())
}

func TestSessionValidationKeepsState(t *testing.T) {
	s, view := newSession(t)
	_, err := s.OpenAdd()
	require.NoError(t, err)

	_, err = s.Submit(Form{IsRotRut: true, Count: decPtr("1")})
	require.Error(t, err)

	var v model.Violations
	require.ErrorAs(t, err, &v)
	assert.Equal(t, []string{model.FieldCost, model.FieldDescription, model.FieldServiceType}, v.Fields())
	assert.Equal(t, Adding, s.State())
	assert.Equal(t, 2, s.Ledger().Len())
	assert.Empty(t, view.added)
}

func TestSessionSubmitView(t *testing.T) {
	s, view := newSession(t)
	view.values = url.Values{
		"description":          {"Städning"},
		"cost":                 {"450,50"},
		"count":                {"4"},
		"unit":                 {"2"},
		"vat":                  {"0"},
		"is_rot_rut":           {"on"},
		"rot_rut_service_type": {"7"},
	}

	_, err := s.OpenAdd()
	require.NoError(t, err)
	item, err := s.SubmitView()
	require.NoError(t, err)

	assert.True(t, item.Cost.Equal(decimal.RequireFromString("450.50")))
	assert.Equal(t, model.UnitHours, item.Unit)
	require.NotNil(t, item.RotRutServiceType)
	assert.Equal(t, model.ReductionRUT, item.ServiceKind())
}

func TestSessionSubmitViewNotNumeric(t *testing.T) {
	s, view := newSession(t)
	view.values = url.Values{
		"description": {"Material"},
		"cost":        {"tio"},
		"count":       {""},
	}

	_, err := s.OpenAdd()
	require.NoError(t, err)
	_, err = s.SubmitView()

	var v model.Violations
	require.ErrorAs(t, err, &v)
	assert.Equal(t, model.CodeNumeric, v[model.FieldCost])
	assert.Equal(t, model.CodeRequired, v[model.FieldCount])
	assert.Equal(t, Adding, s.State())
}

func TestSessionDelete(t *testing.T) {
	s, view := newSession(t)
	_, err := s.OpenEdit(5)
	require.NoError(t, err)

	require.NoError(t, s.Delete())

	assert.Equal(t, Closed, s.State())
	assert.Equal(t, []int{5}, view.deleted)
	assert.Equal(t, []int{5}, s.Ledger().Deleted())
	_, ok := s.Ledger().Get(5)
	assert.False(t, ok)
}

func TestSessionDeleteWhileAdding(t *testing.T) {
	s, view := newSession(t)
	_, err := s.OpenAdd()
	require.NoError(t, err)

	require.NoError(t, s.Delete())
	assert.Equal(t, Closed, s.State())
	assert.Empty(t, view.deleted)
	assert.Equal(t, 2, s.Ledger().Len())
}

func TestSessionCancel(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.OpenEdit(5)
	require.NoError(t, err)

	s.Cancel()
	assert.Equal(t, Closed, s.State())
	assert.Equal(t, 0, s.EditingID())
	assert.Equal(t, 2, s.Ledger().Len())
}

func TestSessionClosedActions(t *testing.T) {
	s, _ := newSession(t)

	_, err := s.Submit(Form{})
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = s.SubmitView()
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, s.Delete(), ErrNotOpen)

	_, err = s.OpenAdd()
	require.NoError(t, err)
	_, err = s.OpenEdit(5)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestSessionReorder(t *testing.T) {
	s, view := newSession(t)
	s.Reorder([]int{6, 5})

	assert.Equal(t, []int{6, 5}, s.Ledger().Order())
	require.Len(t, view.reordered, 1)
	assert.Equal(t, []int{6, 5}, view.reordered[0])
}

func TestDecodeRoundTrip(t *testing.T) {
	svc := model.ServiceVVS
	f := Form{
		ID:          -3,
		Description: "Rör",
		Cost:        decPtr("1250.75"),
		Count:       decPtr("1.5"),
		Unit:        model.UnitDays,
		VAT:         model.VAT12,
		IsRotRut:    true,
		ServiceType: &svc,
	}

	got, v := Decode(f.Values())
	require.True(t, v.Empty(), "violations: %v", v)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, f.Description, got.Description)
	assert.True(t, f.Cost.Equal(*got.Cost))
	assert.True(t, f.Count.Equal(*got.Count))
	assert.Equal(t, f.Unit, got.Unit)
	assert.Equal(t, f.VAT, got.VAT)
	assert.True(t, got.IsRotRut)
	assert.Equal(t, svc, *got.ServiceType)
}

func TestCounterPrice(t *testing.T) {
	tests := []struct {
		field PriceField
		value string
		vat   model.VATRate
		want  string
	}{
		{PriceInclusive, "125", model.VAT25, "100"},
		{PriceExclusive, "100", model.VAT25, "125"},
		{PriceInclusive, "10", model.VAT6, "9.43"},
		{PriceExclusive, "19,90", model.VAT12, "22.29"},
	}
	for _, tt := range tests {
		got, ok := CounterPrice(tt.field, tt.value, tt.vat)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := CounterPrice(PriceInclusive, "abc", model.VAT25)
	assert.False(t, ok)
	_, ok = CounterPrice(PriceInclusive, "", model.VAT25)
	assert.False(t, ok)
}
