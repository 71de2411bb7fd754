// Package form implements the transaction form state machine used by
// interactive clients. Fields validate on first blur and on every change
// after that; the category field follows the type field; submission runs
// through a pluggable Submitter.
package form

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/models"
	"fintrack/internal/validation"
)

// State names the form's lifecycle phase.
type State int

const (
	// Editing accepts field changes and blurs.
	Editing State = iota
	// Submitting has a request in flight; changes and submits are rejected.
	Submitting
	// Succeeded is terminal; the client navigates away from the form.
	Succeeded
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	}
	return "unknown"
}

var (
	// ErrSubmitInFlight rejects a submit while one is already running.
	ErrSubmitInFlight = errors.New("submit already in flight")
	// ErrNotEditing rejects field changes outside the Editing state.
	ErrNotEditing = errors.New("form is not editable")
	// ErrDateReadOnly rejects date changes when editing an existing record.
	ErrDateReadOnly = errors.New("date cannot be changed on an existing transaction")
	// ErrInvalid is returned by Submit when validation fails; the per-field
	// messages are available via FieldErrors.
	ErrInvalid = errors.New("form has invalid fields")
)

// Submitter persists a completed form. internal/client implements it over
// HTTP; tests implement it directly.
type Submitter interface {
	CreateTransaction(ctx context.Context, input map[string]any) error
	UpdateTransaction(ctx context.Context, id string, input map[string]any) error
}

// Form is the transaction form state machine. Safe for concurrent use.
type Form struct {
	mu        sync.Mutex
	submitter Submitter

	// transactionID is set when editing an existing record; empty for the
	// create form.
	transactionID string

	state   State
	values  map[string]string
	touched map[string]bool
	errs    validation.FieldErrors
	lastErr error
}

// NewCreate returns an empty create form.
func NewCreate(submitter Submitter) *Form {
	return &Form{
		submitter: submitter,
		values:    map[string]string{},
		touched:   map[string]bool{},
		errs:      validation.FieldErrors{},
	}
}

// NewEdit returns a form pre-filled from an existing transaction. The
// transaction date is read-only on an edit form.
func NewEdit(submitter Submitter, tx *models.Transaction) *Form {
	values := map[string]string{
		"type":        string(tx.Type),
		"amount":      tx.Amount.String(),
		"description": tx.Description,
		"created_at":  tx.CreatedAt.Format("2006-01-02"),
	}
	if tx.Category != nil {
		values["category"] = *tx.Category
	}
	return &Form{
		submitter:     submitter,
		transactionID: tx.ID,
		values:        values,
		touched:       map[string]bool{},
		errs:          validation.FieldErrors{},
	}
}

// State returns the current lifecycle phase.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Value returns the current value of a field.
func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// FieldError returns the first validation message shown for a field, or "".
// Only touched fields carry messages.
func (f *Form) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.First(field)
}

// LastError returns the error from the most recent failed submit.
func (f *Form) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// CategoryEnabled reports whether the category field is selectable. The
// field follows the type: only expenses carry a category.
func (f *Form) CategoryEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values["type"] == string(models.TransactionTypeExpense)
}

// DateEditable reports whether the date field accepts changes. The date is
// fixed once a transaction exists.
func (f *Form) DateEditable() bool {
	return f.transactionID == ""
}

// SetField sets a field value. Changing the type away from Expense clears
// the category. Touched fields revalidate on every change.
func (f *Form) SetField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Editing {
		return ErrNotEditing
	}
	if field == "created_at" && f.transactionID != "" {
		return ErrDateReadOnly
	}

	f.values[field] = value
	if field == "type" && value != string(models.TransactionTypeExpense) {
		delete(f.values, "category")
		delete(f.touched, "category")
	}

	f.revalidate()
	return nil
}

// Blur marks a field as touched, enabling validation messages for it.
func (f *Form) Blur(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Editing {
		return
	}
	f.touched[field] = true
	f.revalidate()
}

// revalidate recomputes messages for touched fields. Caller holds the lock.
func (f *Form) revalidate() {
	f.errs = validation.FieldErrors{}
	_, all := validation.Transaction(f.input())
	for field, msgs := range all {
		if f.touched[field] {
			f.errs[field] = msgs
		}
	}
}

// input builds the untyped record the schema and the submitter consume.
// Caller holds the lock.
func (f *Form) input() map[string]any {
	input := map[string]any{}
	for field, value := range f.values {
		if value != "" {
			input[field] = value
		}
	}
	return input
}

// Submit validates the whole form and hands it to the submitter. On success
// the form reaches its terminal state; on failure it returns to Editing
// with the error retained.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Submitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	case Succeeded:
		f.mu.Unlock()
		return ErrNotEditing
	}

	// A submit touches everything; every violation becomes visible.
	for _, field := range []string{"type", "category", "amount", "description", "created_at"} {
		f.touched[field] = true
	}
	_, all := validation.Transaction(f.input())
	if all != nil {
		f.errs = all
		f.lastErr = ErrInvalid
		f.mu.Unlock()
		return ErrInvalid
	}
	f.errs = validation.FieldErrors{}
	f.state = Submitting
	input := f.input()
	id := f.transactionID
	f.mu.Unlock()

	var err error
	if id == "" {
		err = f.submitter.CreateTransaction(ctx, input)
	} else {
		err = f.submitter.UpdateTransaction(ctx, id, input)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = Editing
		f.lastErr = err
		return err
	}
	f.state = Succeeded
	f.lastErr = nil
	return nil
}
