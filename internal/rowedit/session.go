// Package rowedit implements the add/edit dialog for invoice rows on top of
// a ledger.Ledger.
package rowedit

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/model"
)

// State is the dialog state.
type State int

const (
	Closed State = iota
	Adding
	Editing
)

func (s State) String() string {
	switch s {
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

var (
	// ErrNotOpen is returned for dialog actions while the dialog is closed.
	ErrNotOpen = errors.New("rowedit: dialog is not open")
	// ErrAlreadyOpen is returned when opening a dialog that is already open.
	ErrAlreadyOpen = errors.New("rowedit: dialog is already open")
)

// LedgerView is implemented by the UI layer. The session reads the current
// dialog values through FormValues and reports applied changes through the
// On* callbacks so the view can re-render; it never delegates decisions to
// the view.
type LedgerView interface {
	FormValues() (url.Values, error)
	OnAdd(item model.LineItem)
	OnEdit(item model.LineItem)
	OnDelete(rowID int)
	OnReorder(ids []int)
}

// Session holds the dialog state for one mounted invoice view. Create it
// when the view is shown and drop it when the user navigates away.
type Session struct {
	ID     string
	ledger *ledger.Ledger
	view   LedgerView
	logger *zap.Logger

	state   State
	editing int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession binds a dialog to l and view.
func NewSession(l *ledger.Ledger, view LedgerView, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		ledger: l,
		view:   view,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.ID))
	return s
}

// State returns the current dialog state.
func (s *Session) State() State { return s.state }

// EditingID returns the id of the row being edited, or 0.
func (s *Session) EditingID() int { return s.editing }

// Ledger returns the ledger the session edits.
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// OpenAdd opens the dialog for a new row. The returned form carries the
// id 0 sentinel.
func (s *Session) OpenAdd() (Form, error) {
	if s.state != Closed {
		return Form{}, ErrAlreadyOpen
	}
	s.transition(Adding, 0)
	return Form{}, nil
}

// OpenEdit opens the dialog for an existing row, returning its values.
func (s *Session) OpenEdit(rowID int) (Form, error) {
	if s.state != Closed {
		return Form{}, ErrAlreadyOpen
	}
	item, ok := s.ledger.Get(rowID)
	if !ok {
		return Form{}, fmt.Errorf("%w: %d", ledger.ErrRowNotFound, rowID)
	}
	s.transition(Editing, rowID)
	return FormFromItem(item), nil
}

// Submit validates f and stores it in the ledger. On a validation error
// the returned error is a model.Violations and the dialog stays open with
// the ledger unchanged.
func (s *Session) Submit(f Form) (model.LineItem, error) {
	if s.state == Closed {
		return model.LineItem{}, ErrNotOpen
	}
	if v := f.Validate(); !v.Empty() {
		s.logger.Debug("row rejected", zap.Strings("fields", v.Fields()))
		return model.LineItem{}, v
	}

	item := f.item()
	if s.state == Editing {
		item.ID = s.editing
	} else {
		item.ID = s.ledger.NextTemporaryID()
	}
	if err := s.ledger.AddOrReplace(item); err != nil {
		return model.LineItem{}, err
	}
	stored, _ := s.ledger.Get(item.ID)

	if s.state == Editing {
		s.view.OnEdit(stored)
	} else {
		s.view.OnAdd(stored)
	}
	s.logger.Info("row saved", zap.Int("row_id", stored.ID), zap.Stringer("state", s.state))
	s.transition(Closed, 0)
	return stored, nil
}

// SubmitView reads the dialog values from the view and submits them.
func (s *Session) SubmitView() (model.LineItem, error) {
	if s.state == Closed {
		return model.LineItem{}, ErrNotOpen
	}
	values, err := s.view.FormValues()
	if err != nil {
		return model.LineItem{}, fmt.Errorf("reading dialog values: %w", err)
	}
	f, v := Decode(values)
	if !v.Empty() {
		for field, code := range f.Validate() {
			v.Add(field, code)
		}
		return model.LineItem{}, v
	}
	return s.Submit(f)
}

// Delete removes the row being edited and closes the dialog. Deleting from
// an add dialog just closes it.
func (s *Session) Delete() error {
	switch s.state {
	case Closed:
		return ErrNotOpen
	case Adding:
		s.transition(Closed, 0)
		return nil
	}
	rowID := s.editing
	if err := s.ledger.Remove(rowID); err != nil {
		return err
	}
	s.view.OnDelete(rowID)
	s.logger.Info("row deleted", zap.Int("row_id", rowID))
	s.transition(Closed, 0)
	return nil
}

// Cancel closes the dialog without changes.
func (s *Session) Cancel() {
	s.transition(Closed, 0)
}

// Reorder applies a drag-and-drop result to the ledger.
func (s *Session) Reorder(ids []int) {
	s.ledger.Reorder(ids)
	s.view.OnReorder(s.ledger.Order())
}

func (s *Session) transition(to State, rowID int) {
	s.logger.Debug("dialog transition",
		zap.Stringer("from", s.state),
		zap.Stringer("to", to),
		zap.Int("row_id", rowID))
	s.state = to
	s.editing = rowID
}
