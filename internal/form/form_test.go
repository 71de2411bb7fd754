package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// mockSubmitter records submissions and optionally blocks or fails.
type mockSubmitter struct {
	mu       sync.Mutex
	created  []map[string]any
	updated  []string
	err      error
	blockCh  chan struct{}
	createFn func(input map[string]any) error
}

func (m *mockSubmitter) CreateTransaction(ctx context.Context, input map[string]any) error {
	if m.blockCh != nil {
		<-m.blockCh
	}
	if m.createFn != nil {
		return m.createFn(input)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, input)
	return nil
}

func (m *mockSubmitter) UpdateTransaction(ctx context.Context, id string, input map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, id)
	return nil
}

func fillValid(t *testing.T, f *Form) {
	t.Helper()
	for field, value := range map[string]string{
		"type":       "Expense",
		"category":   "Food",
		"amount":     "12.50",
		"created_at": "2026-03-14",
	} {
		if err := f.SetField(field, value); err != nil {
			t.Fatalf("SetField(%s): %v", field, err)
		}
	}
}

func TestOnTouchedValidation(t *testing.T) {
	t.Run("no_message_before_blur", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})

		f.SetField("amount", "not-a-number")
		if msg := f.FieldError("amount"); msg != "" {
			t.Errorf("expected no message before blur, got %q", msg)
		}
	})

	t.Run("message_appears_on_blur", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})

		f.SetField("amount", "not-a-number")
		f.Blur("amount")
		if msg := f.FieldError("amount"); msg == "" {
			t.Error("expected message after blur")
		}
	})

	t.Run("touched_field_revalidates_on_change", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})

		f.SetField("amount", "not-a-number")
		f.Blur("amount")
		if msg := f.FieldError("amount"); msg == "" {
			t.Fatal("expected message after blur")
		}

		f.SetField("amount", "10.00")
		if msg := f.FieldError("amount"); msg != "" {
			t.Errorf("expected message cleared after fix, got %q", msg)
		}
	})

	t.Run("untouched_fields_stay_silent", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})

		f.Blur("amount")
		if msg := f.FieldError("type"); msg != "" {
			t.Errorf("expected no message for untouched type, got %q", msg)
		}
	})
}

func TestCategoryFollowsType(t *testing.T) {
	t.Run("enabled_only_for_expense", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})

		if f.CategoryEnabled() {
			t.Error("expected category disabled before a type is chosen")
		}
		f.SetField("type", "Expense")
		if !f.CategoryEnabled() {
			t.Error("expected category enabled for Expense")
		}
		f.SetField("type", "Income")
		if f.CategoryEnabled() {
			t.Error("expected category disabled for Income")
		}
	})

	t.Run("switching_away_clears_category", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})

		f.SetField("type", "Expense")
		f.SetField("category", "Food")
		f.SetField("type", "Saving")

		if got := f.Value("category"); got != "" {
			t.Errorf("expected category cleared, got %q", got)
		}
	})
}

func TestDateReadOnlyWhenEditing(t *testing.T) {
	category := "Food"
	tx := &models.Transaction{
		ID:       "tx-1",
		Type:     models.TransactionTypeExpense,
		Category: &category,
		Amount:   decimal.RequireFromString("5.00"),
	}
	f := NewEdit(&mockSubmitter{}, tx)

	if f.DateEditable() {
		t.Error("expected date read-only on edit form")
	}
	if err := f.SetField("created_at", "2026-01-01"); !errors.Is(err, ErrDateReadOnly) {
		t.Errorf("expected ErrDateReadOnly, got %v", err)
	}

	create := NewCreate(&mockSubmitter{})
	if !create.DateEditable() {
		t.Error("expected date editable on create form")
	}
}

func TestSubmit(t *testing.T) {
	t.Run("valid_create_succeeds", func(t *testing.T) {
		submitter := &mockSubmitter{}
		f := NewCreate(submitter)
		fillValid(t, f)

		if err := f.Submit(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.State() != Succeeded {
			t.Errorf("expected Succeeded, got %v", f.State())
		}
		if len(submitter.created) != 1 {
			t.Fatalf("expected one submission, got %d", len(submitter.created))
		}
		if submitter.created[0]["category"] != "Food" {
			t.Errorf("expected category in submission, got %v", submitter.created[0])
		}
	})

	t.Run("edit_submits_update", func(t *testing.T) {
		submitter := &mockSubmitter{}
		category := "Food"
		tx := &models.Transaction{
			ID:          "tx-1",
			Type:        models.TransactionTypeExpense,
			Category:    &category,
			Amount:      decimal.RequireFromString("5.00"),
			Description: "Lunch",
		}
		f := NewEdit(submitter, tx)
		f.SetField("amount", "7.50")

		// The pre-filled date came from the record; edits never clear it.
		if err := f.Submit(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(submitter.updated) != 1 || submitter.updated[0] != "tx-1" {
			t.Errorf("expected update for tx-1, got %v", submitter.updated)
		}
	})

	t.Run("invalid_form_surfaces_all_errors", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})
		f.SetField("type", "Expense") // category missing, amount missing

		err := f.Submit(context.Background())
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
		if f.State() != Editing {
			t.Errorf("expected Editing, got %v", f.State())
		}
		if f.FieldError("category") == "" {
			t.Error("expected category message visible after submit")
		}
		if f.FieldError("amount") == "" {
			t.Error("expected amount message visible after submit")
		}
	})

	t.Run("failed_submit_returns_to_editing", func(t *testing.T) {
		submitErr := errors.New("bad gateway")
		submitter := &mockSubmitter{err: submitErr}
		f := NewCreate(submitter)
		fillValid(t, f)

		err := f.Submit(context.Background())
		if !errors.Is(err, submitErr) {
			t.Fatalf("expected submit error, got %v", err)
		}
		if f.State() != Editing {
			t.Errorf("expected Editing after failure, got %v", f.State())
		}
		if !errors.Is(f.LastError(), submitErr) {
			t.Errorf("expected LastError retained, got %v", f.LastError())
		}
	})

	t.Run("second_submit_rejected_while_in_flight", func(t *testing.T) {
		block := make(chan struct{})
		submitter := &mockSubmitter{blockCh: block}
		f := NewCreate(submitter)
		fillValid(t, f)

		done := make(chan error, 1)
		go func() { done <- f.Submit(context.Background()) }()

		// Wait for the first submit to take the in-flight state.
		for f.State() != Submitting {
			time.Sleep(time.Millisecond)
		}

		if err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
			t.Errorf("expected ErrSubmitInFlight, got %v", err)
		}
		if err := f.SetField("amount", "1"); !errors.Is(err, ErrNotEditing) {
			t.Errorf("expected ErrNotEditing while submitting, got %v", err)
		}

		close(block)
		if err := <-done; err != nil {
			t.Fatalf("first submit failed: %v", err)
		}
	})

	t.Run("succeeded_is_terminal", func(t *testing.T) {
		f := NewCreate(&mockSubmitter{})
		fillValid(t, f)
		if err := f.Submit(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := f.Submit(context.Background()); !errors.Is(err, ErrNotEditing) {
			t.Errorf("expected ErrNotEditing after success, got %v", err)
		}
		if err := f.SetField("amount", "1"); !errors.Is(err, ErrNotEditing) {
			t.Errorf("expected ErrNotEditing after success, got %v", err)
		}
	})
}
