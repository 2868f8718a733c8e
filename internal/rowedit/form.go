package rowedit

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/id"
	"github.com/faktura-dev/faktura/internal/model"
)

var commaPeriod = strings.NewReplacer(",", ".", " ", "", "\u00a0", "")

// rawForm mirrors the field names of the row dialog.
type rawForm struct {
	ID          string `form:"id"`
	Description string `form:"description"`
	Cost        string `form:"cost"`
	Count       string `form:"count"`
	Unit        string `form:"unit"`
	VAT         string `form:"vat"`
	IsRotRut    string `form:"is_rot_rut"`
	ServiceType string `form:"rot_rut_service_type"`
}

// Form is the typed content of the row dialog. A nil Cost or Count means
// the field was left empty.
type Form struct {
	ID          int
	Description string
	Cost        *decimal.Decimal
	Count       *decimal.Decimal
	Unit        model.Unit
	VAT         model.VATRate
	IsRotRut    bool
	ServiceType *model.ServiceType
}

// Decode parses raw dialog values. Only values that cannot be read at all
// are reported here; Validate decides what is required.
func Decode(values url.Values) (Form, model.Violations) {
	var raw rawForm
	v := model.Violations{}
	if err := form.NewDecoder().Decode(&raw, values); err != nil {
		v.Add("form", err.Error())
		return Form{}, v
	}

	f := Form{Description: strings.TrimSpace(raw.Description)}

	rowID, err := id.ParseRowID(raw.ID)
	if err != nil {
		v.Add("id", model.CodeNumeric)
	}
	f.ID = rowID

	f.Cost = parseDecimal(model.FieldCost, raw.Cost, v)
	f.Count = parseDecimal(model.FieldCount, raw.Count, v)

	if n, ok := parseInt(model.FieldUnit, raw.Unit, v); ok {
		f.Unit = model.Unit(n)
	}
	if n, ok := parseInt(model.FieldVAT, raw.VAT, v); ok {
		f.VAT = model.VATRate(n)
	}

	f.IsRotRut = parseBool(raw.IsRotRut)
	if n, ok := parseInt(model.FieldServiceType, raw.ServiceType, v); ok && strings.TrimSpace(raw.ServiceType) != "" {
		s := model.ServiceType(n)
		f.ServiceType = &s
	}
	return f, v
}

// Values is the inverse of Decode, used to pre-populate a dialog.
func (f Form) Values() url.Values {
	v := url.Values{}
	v.Set("id", strconv.Itoa(f.ID))
	v.Set("description", f.Description)
	if f.Cost != nil {
		v.Set("cost", f.Cost.String())
	}
	if f.Count != nil {
		v.Set("count", f.Count.String())
	}
	v.Set("unit", strconv.Itoa(int(f.Unit)))
	v.Set("vat", strconv.Itoa(int(f.VAT)))
	if f.IsRotRut {
		v.Set("is_rot_rut", "on")
	}
	if f.ServiceType != nil {
		v.Set("rot_rut_service_type", strconv.Itoa(int(*f.ServiceType)))
	}
	return v
}

// FormFromItem pre-populates a Form from an existing row.
func FormFromItem(li model.LineItem) Form {
	cost, count := li.Cost, li.Count
	f := Form{
		ID:          li.ID,
		Description: li.Description,
		Cost:        &cost,
		Count:       &count,
		Unit:        li.Unit,
		VAT:         li.VAT,
		IsRotRut:    li.IsRotRut,
	}
	if li.RotRutServiceType != nil {
		s := *li.RotRutServiceType
		f.ServiceType = &s
	}
	return f
}

// Validate checks that the dialog holds a complete row.
func (f Form) Validate() model.Violations {
	v := model.Violations{}
	if f.Description == "" {
		v.Add(model.FieldDescription, model.CodeRequired)
	}
	if f.Cost == nil {
		v.Add(model.FieldCost, model.CodeRequired)
	}
	if f.Count == nil {
		v.Add(model.FieldCount, model.CodeRequired)
	}
	if f.IsRotRut && f.ServiceType == nil {
		v.Add(model.FieldServiceType, model.CodeRequired)
	}
	if !v.Empty() {
		return v
	}
	for field, code := range f.item().Validate() {
		v.Add(field, code)
	}
	return v
}

// item converts a validated form to a row. The service type is dropped
// when the row is not a ROT/RUT row, as the dialog hides that field.
func (f Form) item() model.LineItem {
	li := model.LineItem{
		ID:          f.ID,
		Description: f.Description,
		Unit:        f.Unit,
		VAT:         f.VAT,
		IsRotRut:    f.IsRotRut,
	}
	if f.Cost != nil {
		li.Cost = *f.Cost
	}
	if f.Count != nil {
		li.Count = *f.Count
	}
	if f.IsRotRut && f.ServiceType != nil {
		s := *f.ServiceType
		li.RotRutServiceType = &s
	}
	return li
}

func parseDecimal(field, s string, v model.Violations) *decimal.Decimal {
	s = commaPeriod.Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		v.Add(field, model.CodeNumeric)
		return nil
	}
	return &d
}

func parseInt(field, s string, v model.Violations) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.Add(field, model.CodeNumeric)
		return 0, false
	}
	return n, true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "on", "true", "yes", "ja":
		return true
	}
	return false
}

// String is used in log fields.
func (f Form) String() string {
	return fmt.Sprintf("row %d %q", f.ID, f.Description)
}
