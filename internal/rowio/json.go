package rowio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/model"
)

// Record is the JSON shape of one row, as carried in a row's hidden field
// and in the row[] submission values.
type Record struct {
	ID                int                `json:"ID,omitempty"`
	RowOrder          int                `json:"row_order"`
	Description       string             `json:"description"`
	Cost              decimal.Decimal    `json:"cost"`
	Count             decimal.Decimal    `json:"count"`
	Unit              model.Unit         `json:"unit"`
	VAT               model.VATRate      `json:"vat"`
	IsRotRut          bool               `json:"is_rot_rut"`
	RotRutServiceType *model.ServiceType `json:"rot_rut_service_type,omitempty"`
	Total             decimal.Decimal    `json:"total"`
}

// NewRecord converts item to its JSON record.
func NewRecord(item model.LineItem) Record {
	return Record{
		ID:                item.ID,
		RowOrder:          item.RowOrder,
		Description:       item.Description,
		Cost:              item.Cost,
		Count:             item.Count,
		Unit:              item.Unit,
		VAT:               item.VAT,
		IsRotRut:          item.IsRotRut,
		RotRutServiceType: item.RotRutServiceType,
		Total:             item.Total(),
	}
}

// Item converts the record back to a row. Total is derived and ignored.
func (r Record) Item() model.LineItem {
	return model.LineItem{
		ID:                r.ID,
		RowOrder:          r.RowOrder,
		Description:       r.Description,
		Cost:              r.Cost,
		Count:             r.Count,
		Unit:              r.Unit,
		VAT:               r.VAT,
		IsRotRut:          r.IsRotRut,
		RotRutServiceType: r.RotRutServiceType,
	}
}

// MarshalRecord encodes item as a single JSON record.
func MarshalRecord(item model.LineItem) (string, error) {
	b, err := json.Marshal(NewRecord(item))
	if err != nil {
		return "", fmt.Errorf("encoding row %d: %w", item.ID, err)
	}
	return string(b), nil
}

// UnmarshalRecord decodes a single JSON record.
func UnmarshalRecord(s string) (model.LineItem, error) {
	var r Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return model.LineItem{}, fmt.Errorf("decoding row: %w", err)
	}
	return r.Item(), nil
}

// ReadRecords reads a JSON array of records.
func ReadRecords(r io.Reader) ([]model.LineItem, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding rows JSON: %w", err)
	}
	items := make([]model.LineItem, len(records))
	for i, rec := range records {
		items[i] = rec.Item()
	}
	return items, nil
}

// WriteRecords writes items as an indented JSON array.
func WriteRecords(w io.Writer, items []model.LineItem) error {
	records := make([]Record, len(items))
	for i, item := range items {
		records[i] = NewRecord(item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding rows JSON: %w", err)
	}
	return nil
}
