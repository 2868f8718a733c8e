package model

import "github.com/shopspring/decimal"

// Field names used in Violations.
const (
	FieldDescription = "description"
	FieldCost        = "cost"
	FieldCount       = "count"
	FieldUnit        = "unit"
	FieldVAT         = "vat"
	FieldServiceType = "rot_rut_service_type"
)

// LineItem is a single invoice row.
type LineItem struct {
	ID          int // > 0 persisted, <= 0 local only
	Description string
	Cost        decimal.Decimal // unit price including VAT
	Count       decimal.Decimal
	Unit        Unit
	VAT         VATRate
	RowOrder    int

	IsRotRut          bool
	RotRutServiceType *ServiceType // set iff IsRotRut
}

// Persisted reports whether the row exists on the server.
func (li LineItem) Persisted() bool { return li.ID > 0 }

// Total returns Cost * Count.
func (li LineItem) Total() decimal.Decimal {
	return li.Cost.Mul(li.Count)
}

// ServiceKind returns the reduction scheme of the row, or "" when the row is
// not a ROT/RUT row.
func (li LineItem) ServiceKind() ReductionKind {
	if !li.IsRotRut || li.RotRutServiceType == nil {
		return ""
	}
	return li.RotRutServiceType.Kind()
}

// Validate checks the row invariants. It does not look at the ID.
func (li LineItem) Validate() Violations {
	v := Violations{}
	if li.Description == "" {
		v.Add(FieldDescription, CodeRequired)
	}
	if li.Cost.IsNegative() {
		v.Add(FieldCost, CodeNegative)
	}
	if li.Count.IsNegative() {
		v.Add(FieldCount, CodeNegative)
	}
	if !li.Unit.Valid() {
		v.Add(FieldUnit, CodeUnknown)
	}
	if !li.VAT.Valid() {
		v.Add(FieldVAT, CodeUnknown)
	}
	switch {
	case li.IsRotRut && li.RotRutServiceType == nil:
		v.Add(FieldServiceType, CodeRequired)
	case li.IsRotRut && *li.RotRutServiceType < 0:
		v.Add(FieldServiceType, CodeUnknown)
	case !li.IsRotRut && li.RotRutServiceType != nil:
		v.Add(FieldServiceType, CodeNotAllowed)
	}
	return v
}

// ServicePtr returns a pointer to s, for building rows in code.
func ServicePtr(s ServiceType) *ServiceType { return &s }
