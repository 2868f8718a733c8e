// Package ledger keeps the ordered set of invoice rows being edited.
package ledger

import (
	"errors"
	"fmt"

	"github.com/faktura-dev/faktura/internal/id"
	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/tax"
)

var (
	// ErrRowNotFound is returned when an id is not in the active set.
	ErrRowNotFound = errors.New("ledger: row not found")
	// ErrUnallocatedID is returned when a row with id 0 is added; callers
	// must take an id from NextTemporaryID first.
	ErrUnallocatedID = errors.New("ledger: row id not allocated")
	// ErrDuplicateID is returned when loading rows that share an id.
	ErrDuplicateID = errors.New("ledger: duplicate row id")
)

// Ledger is an ordered, in-memory collection of invoice rows. It is not
// safe for concurrent use.
type Ledger struct {
	rows    []model.LineItem
	deleted []model.LineItem
	tmp     *id.Temporary
}

// Submission is what the server needs to store the rows.
type Submission struct {
	Rows   []model.LineItem // active rows in display order
	Delete []int            // persisted rows to delete
	Order  []int            // ids in display order
}

// New creates a Ledger from rows in display order, typically as rendered
// by the server.
func New(rows []model.LineItem) (*Ledger, error) {
	return Restore(rows, nil)
}

// Restore creates a Ledger from active rows and rows already marked for
// deletion. Every row must satisfy the row invariants. Active rows without
// an id get a fresh temporary one.
func Restore(active, deleted []model.LineItem) (*Ledger, error) {
	l := &Ledger{tmp: id.NewTemporary()}
	seen := make(map[int]bool, len(active)+len(deleted))
	for _, group := range [][]model.LineItem{active, deleted} {
		for _, r := range group {
			if err := r.Validate().Err(); err != nil {
				return nil, fmt.Errorf("row %d: %w", r.ID, err)
			}
			if r.ID == 0 {
				continue
			}
			if seen[r.ID] {
				return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
			}
			seen[r.ID] = true
			l.tmp.Observe(r.ID)
		}
	}
	l.rows = make([]model.LineItem, 0, len(active))
	for _, r := range active {
		if r.ID == 0 {
			r.ID = l.tmp.Next()
		}
		l.rows = append(l.rows, r)
	}
	for _, r := range deleted {
		if r.Persisted() {
			l.deleted = append(l.deleted, r)
		}
	}
	return l, nil
}

// NextTemporaryID allocates an id for a row that is not yet saved.
func (l *Ledger) NextTemporaryID() int {
	return l.tmp.Next()
}

// Len returns the number of active rows.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows returns a copy of the active rows in display order.
func (l *Ledger) Rows() []model.LineItem {
	out := make([]model.LineItem, len(l.rows))
	copy(out, l.rows)
	return out
}

// Get returns the active row with the given id.
func (l *Ledger) Get(rowID int) (model.LineItem, bool) {
	i := l.index(rowID)
	if i < 0 {
		return model.LineItem{}, false
	}
	return l.rows[i], true
}

// Deleted returns the ids of persisted rows marked for deletion.
func (l *Ledger) Deleted() []int {
	ids := make([]int, len(l.deleted))
	for i, r := range l.deleted {
		ids[i] = r.ID
	}
	return ids
}

// DeletedRows returns the rows marked for deletion.
func (l *Ledger) DeletedRows() []model.LineItem {
	out := make([]model.LineItem, len(l.deleted))
	copy(out, l.deleted)
	return out
}

// AddOrReplace appends item when its id is new and replaces the row in
// place otherwise. A replaced row keeps its RowOrder; a new row gets the
// current row count. Invalid rows are rejected without changing anything.
func (l *Ledger) AddOrReplace(item model.LineItem) error {
	if item.ID == 0 {
		return ErrUnallocatedID
	}
	if err := item.Validate().Err(); err != nil {
		return err
	}
	if i := l.index(item.ID); i >= 0 {
		item.RowOrder = l.rows[i].RowOrder
		l.rows[i] = item
		return nil
	}
	if l.isDeleted(item.ID) {
		return fmt.Errorf("%w: %d was deleted", ErrRowNotFound, item.ID)
	}
	item.RowOrder = len(l.rows)
	l.rows = append(l.rows, item)
	l.tmp.Observe(item.ID)
	return nil
}

// Remove takes a row out of the active set. Persisted rows are remembered
// so the deletion can be sent to the server; local rows are dropped.
func (l *Ledger) Remove(rowID int) error {
	i := l.index(rowID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrRowNotFound, rowID)
	}
	r := l.rows[i]
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	if r.Persisted() {
		l.deleted = append(l.deleted, r)
	}
	return nil
}

// Reorder re-sequences the rows to follow ids. Unknown and repeated ids
// are ignored; rows not mentioned keep their relative order after the
// mentioned ones. RowOrder is re-derived for every row.
func (l *Ledger) Reorder(ids []int) {
	placed := make(map[int]bool, len(l.rows))
	ordered := make([]model.LineItem, 0, len(l.rows))
	for _, rowID := range ids {
		i := l.index(rowID)
		if i < 0 || placed[rowID] {
			continue
		}
		placed[rowID] = true
		ordered = append(ordered, l.rows[i])
	}
	for _, r := range l.rows {
		if !placed[r.ID] {
			ordered = append(ordered, r)
		}
	}
	for i := range ordered {
		ordered[i].RowOrder = i
	}
	l.rows = ordered
}

// Order returns the ids of the active rows in display order.
func (l *Ledger) Order() []int {
	ids := make([]int, len(l.rows))
	for i, r := range l.rows {
		ids[i] = r.ID
	}
	return ids
}

// Totals computes the totals of the active rows.
func (l *Ledger) Totals(rotRutApplicable bool) tax.Totals {
	return tax.ComputeTotals(l.rows, rotRutApplicable)
}

// Submission returns the payload to send to the server.
func (l *Ledger) Submission() Submission {
	return Submission{
		Rows:   l.Rows(),
		Delete: l.Deleted(),
		Order:  l.Order(),
	}
}

func (l *Ledger) index(rowID int) int {
	for i, r := range l.rows {
		if r.ID == rowID {
			return i
		}
	}
	return -1
}

func (l *Ledger) isDeleted(rowID int) bool {
	for _, r := range l.deleted {
		if r.ID == rowID {
			return true
		}
	}
	return false
}
