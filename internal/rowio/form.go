package rowio

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/faktura-dev/faktura/internal/id"
	"github.com/faktura-dev/faktura/internal/ledger"
)

// Form keys used when posting rows to the invoice endpoint.
const (
	KeyRow       = "row[]"
	KeyDeleteRow = "delete_row[]"
	KeyRowOrder  = "roworder"
)

// EncodeForm builds the form body for a submission. Each active row is a
// JSON record in row[], each deleted id a delete_row[] value, and the
// display order a JSON list in roworder.
func EncodeForm(s ledger.Submission) (url.Values, error) {
	v := url.Values{}
	for _, item := range s.Rows {
		rec, err := MarshalRecord(item)
		if err != nil {
			return nil, err
		}
		v.Add(KeyRow, rec)
	}
	for _, rowID := range s.Delete {
		v.Add(KeyDeleteRow, strconv.Itoa(rowID))
	}

	order := s.Order
	if order == nil {
		order = []int{}
	}
	b, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encoding row order: %w", err)
	}
	v.Set(KeyRowOrder, string(b))
	return v, nil
}

// DecodeForm parses a form body produced by EncodeForm.
func DecodeForm(v url.Values) (ledger.Submission, error) {
	var s ledger.Submission
	for i, raw := range v[KeyRow] {
		item, err := UnmarshalRecord(raw)
		if err != nil {
			return ledger.Submission{}, fmt.Errorf("%s %d: %w", KeyRow, i, err)
		}
		s.Rows = append(s.Rows, item)
	}

	deleted, err := id.ParseRowIDs(v[KeyDeleteRow])
	if err != nil {
		return ledger.Submission{}, fmt.Errorf("%s: %w", KeyDeleteRow, err)
	}
	if len(deleted) > 0 {
		s.Delete = deleted
	}

	if raw := v.Get(KeyRowOrder); raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Order); err != nil {
			return ledger.Submission{}, fmt.Errorf("%s: %w", KeyRowOrder, err)
		}
	}
	return s, nil
}
