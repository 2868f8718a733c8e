// Package rowio reads and writes invoice rows: the local draft file, the
// JSON records used in hidden form fields, and the submitted form payload.
package rowio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/model"
)

// Header is the CSV header for rows.csv.
const Header = "id,row_order,description,cost,count,unit,vat,is_rot_rut,rot_rut_service_type,state"

// StateDeleted marks a row that is pending deletion on the server.
const StateDeleted = "deleted"

const (
	numFields  = 10
	colID      = 0
	colOrder   = 1
	colDesc    = 2
	colCost    = 3
	colCount   = 4
	colUnit    = 5
	colVAT     = 6
	colRotRut  = 7
	colService = 8
	colState   = 9
)

// Draft is the local working copy of an invoice's rows.
type Draft struct {
	Active  []model.LineItem
	Deleted []model.LineItem
}

// DraftOf captures the current state of l.
func DraftOf(l *ledger.Ledger) Draft {
	return Draft{Active: l.Rows(), Deleted: l.DeletedRows()}
}

// Ledger builds a ledger from the draft.
func (d Draft) Ledger() (*ledger.Ledger, error) {
	return ledger.Restore(d.Active, d.Deleted)
}

// ReadDraft reads a rows.csv file.
func ReadDraft(r io.Reader) (Draft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return Draft{}, fmt.Errorf("reading rows CSV: %w", err)
	}

	var d Draft
	if len(records) == 0 {
		return d, nil
	}

	// Skip header row.
	for i, rec := range records[1:] {
		item, err := UnmarshalRow(rec)
		if err != nil {
			return Draft{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		if rec[colState] == StateDeleted {
			d.Deleted = append(d.Deleted, item)
		} else {
			d.Active = append(d.Active, item)
		}
	}
	return d, nil
}

// WriteDraft writes a rows.csv file, active rows first.
func WriteDraft(w io.Writer, d Draft) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	line := 2
	for _, item := range d.Active {
		if err := cw.Write(MarshalRow(item, "")); err != nil {
			return fmt.Errorf("writing row %d: %w", line, err)
		}
		line++
	}
	for _, item := range d.Deleted {
		if err := cw.Write(MarshalRow(item, StateDeleted)); err != nil {
			return fmt.Errorf("writing row %d: %w", line, err)
		}
		line++
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a row to a CSV record.
func MarshalRow(item model.LineItem, state string) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(item.ID)
	row[colOrder] = strconv.Itoa(item.RowOrder)
	row[colDesc] = item.Description
	row[colCost] = item.Cost.String()
	row[colCount] = item.Count.String()
	row[colUnit] = strconv.Itoa(int(item.Unit))
	row[colVAT] = strconv.Itoa(int(item.VAT))
	row[colRotRut] = strconv.FormatBool(item.IsRotRut)
	if item.RotRutServiceType != nil {
		row[colService] = strconv.Itoa(int(*item.RotRutServiceType))
	}
	row[colState] = state
	return row
}

// UnmarshalRow converts a CSV record to a row.
func UnmarshalRow(record []string) (model.LineItem, error) {
	if len(record) != numFields {
		return model.LineItem{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	rowID, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	order, err := strconv.Atoi(record[colOrder])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing row_order %q: %w", record[colOrder], err)
	}

	cost, err := decimal.NewFromString(record[colCost])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing cost %q: %w", record[colCost], err)
	}

	count, err := decimal.NewFromString(record[colCount])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing count %q: %w", record[colCount], err)
	}

	unit, err := strconv.Atoi(record[colUnit])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing unit %q: %w", record[colUnit], err)
	}

	vat, err := strconv.Atoi(record[colVAT])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing vat %q: %w", record[colVAT], err)
	}

	isRotRut, err := strconv.ParseBool(record[colRotRut])
	if err != nil {
		return model.LineItem{}, fmt.Errorf("parsing is_rot_rut %q: %w", record[colRotRut], err)
	}

	var service *model.ServiceType
	if record[colService] != "" {
		n, err := strconv.Atoi(record[colService])
		if err != nil {
			return model.LineItem{}, fmt.Errorf("parsing rot_rut_service_type %q: %w", record[colService], err)
		}
		s := model.ServiceType(n)
		service = &s
	}

	return model.LineItem{
		ID:                rowID,
		RowOrder:          order,
		Description:       record[colDesc],
		Cost:              cost,
		Count:             count,
		Unit:              model.Unit(unit),
		VAT:               model.VATRate(vat),
		IsRotRut:          isRotRut,
		RotRutServiceType: service,
	}, nil
}
