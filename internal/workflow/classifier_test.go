package workflow

import (
	"context"
	"errors"
	"testing"

	"finboard/internal/client"
	"finboard/internal/models"
	"finboard/internal/pagination"
)

func strPtr(s string) *string { return &s }

func farmacia() *Session {
	s := NewSession(models.Transaction{Base: models.Base{ID: 42}, Description: "DEBIN Farmacia Sur"})
	s.Category = "EGRESOS"
	s.Subcategory = "Prestadores_Farmacias"
	s.Remember = true
	return s
}

func committed(id uint, fields client.TransactionUpdate) (*models.Transaction, error) {
	return &models.Transaction{
		Base:             models.Base{ID: id},
		Description:      *fields.Description,
		Category:         fields.Category,
		Subcategory:      fields.Subcategory,
		Confidence:       100,
		ConfidenceSource: models.ConfidenceSourceManual,
	}, nil
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies_and_learns_rule", func(t *testing.T) {
		var gotID uint
		var gotRule client.RuleInput
		backend := &mockBackend{
			updateFn: func(id uint, fields client.TransactionUpdate) (*models.Transaction, error) {
				gotID = id
				if *fields.Category != "EGRESOS" || *fields.Subcategory != "Prestadores_Farmacias" {
					t.Errorf("unexpected fields %+v", fields)
				}
				return committed(id, fields)
			},
			ruleFn: func(in client.RuleInput) (*models.Rule, error) {
				gotRule = in
				return &models.Rule{Base: models.Base{ID: 7}, Pattern: in.Pattern, Category: in.Category, Subcategory: in.Subcategory}, nil
			},
		}
		events := &recorder{}
		s := farmacia()

		out, err := NewClassifier(backend, WithNotifier(events)).Submit(ctx, s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotID != 42 {
			t.Errorf("expected update of 42, got %d", gotID)
		}
		want := client.RuleInput{Pattern: "DEBIN FARMACIA SUR", Category: "EGRESOS", Subcategory: "Prestadores_Farmacias"}
		if gotRule != want {
			t.Errorf("expected rule %+v, got %+v", want, gotRule)
		}
		if !equal(backend.calls, []string{"update", "rule"}) {
			t.Errorf("unexpected call order %v", backend.calls)
		}
		if s.State() != StateCommitted || s.RuleState() != RuleCommitted {
			t.Errorf("unexpected states %s/%s", s.State(), s.RuleState())
		}
		if out.Rule.Rule == nil || out.Rule.Rule.ID != 7 {
			t.Errorf("expected rule in outcome, got %+v", out.Rule)
		}
		if !equal(events.levels(), []Level{LevelSuccess, LevelSuccess}) {
			t.Errorf("unexpected events %+v", events.events)
		}
	})

	t.Run("rule_failure_is_a_warning", func(t *testing.T) {
		ruleErr := &client.APIError{StatusCode: 503, Detail: "503 Service Unavailable"}
		backend := &mockBackend{
			updateFn: committed,
			ruleFn:   func(client.RuleInput) (*models.Rule, error) { return nil, ruleErr },
		}
		events := &recorder{}
		s := farmacia()

		out, err := NewClassifier(backend, WithNotifier(events)).Submit(ctx, s)
		if err != nil {
			t.Fatalf("classification must succeed when the rule fails, got %v", err)
		}
		if out.Transaction == nil || *out.Transaction.Category != "EGRESOS" {
			t.Errorf("expected committed transaction, got %+v", out.Transaction)
		}
		if out.Rule.State != RuleFailed || !errors.Is(out.Rule.Err, ruleErr) {
			t.Errorf("expected RuleFailed with the rule error, got %+v", out.Rule)
		}
		if s.State() != StateCommitted {
			t.Errorf("expected committed, got %s", s.State())
		}
		if !equal(events.levels(), []Level{LevelSuccess, LevelWarning}) {
			t.Errorf("unexpected events %+v", events.events)
		}
	})

	t.Run("update_failure_skips_rule", func(t *testing.T) {
		notFound := &client.APIError{StatusCode: 404, Code: "TRANSACTION_NOT_FOUND", Detail: "Transaction not found"}
		backend := &mockBackend{
			updateFn: func(uint, client.TransactionUpdate) (*models.Transaction, error) { return nil, notFound },
		}
		events := &recorder{}
		s := farmacia()

		out, err := NewClassifier(backend, WithNotifier(events)).Submit(ctx, s)
		if !errors.Is(err, notFound) {
			t.Fatalf("expected the update error, got %v", err)
		}
		if out != nil {
			t.Errorf("expected no outcome, got %+v", out)
		}
		if s.State() != StateFailed || s.RuleState() != RuleSkipped {
			t.Errorf("unexpected states %s/%s", s.State(), s.RuleState())
		}
		if !equal(backend.calls, []string{"update"}) {
			t.Errorf("rule must not be attempted, calls %v", backend.calls)
		}
		if !equal(events.levels(), []Level{LevelFailure}) {
			t.Errorf("unexpected events %+v", events.events)
		}
	})

	t.Run("validation_before_any_call", func(t *testing.T) {
		tests := []struct {
			name  string
			edit  func(s *Session)
			field string
		}{
			{"blank_description", func(s *Session) { s.Description = "  " }, "description"},
			{"no_category", func(s *Session) { s.Category = "" }, "category"},
			{"no_transaction", func(s *Session) { s.TransactionID = 0 }, "transaction"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				backend := &mockBackend{}
				events := &recorder{}
				s := farmacia()
				tt.edit(s)

				_, err := NewClassifier(backend, WithNotifier(events)).Submit(ctx, s)
				var vErr *ValidationError
				if !errors.As(err, &vErr) || vErr.Field != tt.field {
					t.Fatalf("expected validation error on %s, got %v", tt.field, err)
				}
				if len(backend.calls) != 0 {
					t.Errorf("expected no backend calls, got %v", backend.calls)
				}
				if s.State() != StateEditing {
					t.Errorf("session should stay editing, got %s", s.State())
				}
				if !equal(events.levels(), []Level{LevelFailure}) {
					t.Errorf("unexpected events %+v", events.events)
				}
			})
		}
	})

	t.Run("remember_without_subcategory_commits_and_skips_rule", func(t *testing.T) {
		var sent client.TransactionUpdate
		backend := &mockBackend{
			updateFn: func(id uint, fields client.TransactionUpdate) (*models.Transaction, error) {
				sent = fields
				return committed(id, fields)
			},
		}
		events := &recorder{}
		s := farmacia()
		s.Subcategory = ""

		out, err := NewClassifier(backend, WithNotifier(events)).Submit(ctx, s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *sent.Category != "EGRESOS" {
			t.Errorf("expected category EGRESOS, got %q", *sent.Category)
		}
		if s.State() != StateCommitted || s.RuleState() != RuleSkipped {
			t.Errorf("unexpected states %s/%s", s.State(), s.RuleState())
		}
		if out.Rule.State != RuleSkipped || !equal(backend.calls, []string{"update"}) {
			t.Errorf("expected skipped rule, got %+v calls %v", out.Rule, backend.calls)
		}
		if !equal(events.levels(), []Level{LevelSuccess, LevelWarning}) {
			t.Errorf("unexpected events %+v", events.events)
		}
	})

	t.Run("rule_state_is_persisting_during_create", func(t *testing.T) {
		s := farmacia()
		var during RuleState
		backend := &mockBackend{
			updateFn: committed,
			ruleFn: func(in client.RuleInput) (*models.Rule, error) {
				during = s.RuleState()
				return &models.Rule{Pattern: in.Pattern}, nil
			},
		}

		if _, err := NewClassifier(backend).Submit(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if during != RulePersisting {
			t.Errorf("expected %s while creating the rule, got %s", RulePersisting, during)
		}
		if s.RuleState() != RuleCommitted {
			t.Errorf("expected %s after, got %s", RuleCommitted, s.RuleState())
		}
	})

	t.Run("without_remember_no_rule", func(t *testing.T) {
		backend := &mockBackend{updateFn: committed}
		s := farmacia()
		s.Remember = false
		s.Subcategory = ""

		out, err := NewClassifier(backend).Submit(ctx, s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Rule.State != RuleSkipped || !equal(backend.calls, []string{"update"}) {
			t.Errorf("expected no rule step, got %+v calls %v", out.Rule, backend.calls)
		}
	})

	t.Run("unusable_description_skips_rule", func(t *testing.T) {
		backend := &mockBackend{updateFn: committed}
		events := &recorder{}
		s := farmacia()
		s.Description = "###"

		out, err := NewClassifier(backend, WithNotifier(events)).Submit(ctx, s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Rule.State != RuleSkipped || len(backend.calls) != 1 {
			t.Errorf("expected skipped rule, got %+v calls %v", out.Rule, backend.calls)
		}
		if !equal(events.levels(), []Level{LevelSuccess, LevelWarning}) {
			t.Errorf("unexpected events %+v", events.events)
		}
	})

	t.Run("max_words_truncates_pattern", func(t *testing.T) {
		var got string
		backend := &mockBackend{
			updateFn: committed,
			ruleFn: func(in client.RuleInput) (*models.Rule, error) {
				got = in.Pattern
				return &models.Rule{Pattern: in.Pattern}, nil
			},
		}
		s := farmacia()
		s.Description = "Transferencia DEBIN Juan Perez 123456"

		if _, err := NewClassifier(backend, WithMaxWords(3)).Submit(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "TRANSFERENCIA DEBIN JUAN" {
			t.Errorf("expected 3-word pattern, got %q", got)
		}
	})

	t.Run("session_is_single_use", func(t *testing.T) {
		backend := &mockBackend{updateFn: committed, ruleFn: func(in client.RuleInput) (*models.Rule, error) { return &models.Rule{}, nil }}
		c := NewClassifier(backend)
		s := farmacia()

		if _, err := c.Submit(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.Submit(ctx, s); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("expected ErrSessionClosed, got %v", err)
		}
		if err := s.Cancel(); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("expected ErrSessionClosed on cancel, got %v", err)
		}
	})
}

func TestSessionCancel(t *testing.T) {
	s := farmacia()
	if err := s.Cancel(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != StateCancelled {
		t.Errorf("expected cancelled, got %s", s.State())
	}

	backend := &mockBackend{}
	if _, err := NewClassifier(backend).Submit(context.Background(), s); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Errorf("expected no calls, got %v", backend.calls)
	}
}

func TestNewSessionPrefills(t *testing.T) {
	s := NewSession(models.Transaction{
		Base:        models.Base{ID: 9},
		Description: "Pago Mercado Pago",
		Category:    strPtr("SERVICIOS"),
		Subcategory: strPtr("Servicios - Internet"),
	})
	if s.OriginalDescription != "Pago Mercado Pago" || s.Category != "SERVICIOS" || s.Subcategory != "Servicios - Internet" {
		t.Errorf("unexpected session %+v", s)
	}
	if s.State() != StateEditing {
		t.Errorf("expected editing, got %s", s.State())
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var got uint
		backend := &mockBackend{deleteFn: func(id uint) error { got = id; return nil }}
		events := &recorder{}

		if err := NewClassifier(backend, WithNotifier(events)).Delete(ctx, 42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 || !equal(events.levels(), []Level{LevelSuccess}) {
			t.Errorf("unexpected delete %d events %+v", got, events.events)
		}
	})

	t.Run("backend_error_is_returned", func(t *testing.T) {
		notFound := &client.APIError{StatusCode: 404, Detail: "Transaction not found"}
		backend := &mockBackend{deleteFn: func(uint) error { return notFound }}
		events := &recorder{}

		err := NewClassifier(backend, WithNotifier(events)).Delete(ctx, 42)
		if !errors.Is(err, notFound) {
			t.Fatalf("expected backend error, got %v", err)
		}
		if !equal(events.levels(), []Level{LevelFailure}) {
			t.Errorf("unexpected events %+v", events.events)
		}
	})

	t.Run("zero_id", func(t *testing.T) {
		backend := &mockBackend{}
		var vErr *ValidationError
		if err := NewClassifier(backend).Delete(ctx, 0); !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if len(backend.calls) != 0 {
			t.Errorf("expected no calls, got %v", backend.calls)
		}
	})
}

func TestPending(t *testing.T) {
	pages := map[int][]models.Transaction{
		1: {{Base: models.Base{ID: 1}}, {Base: models.Base{ID: 2}}},
		2: {{Base: models.Base{ID: 3}}},
	}
	backend := &mockBackend{
		listFn: func(filter client.ListFilter) (*pagination.PageResponse[models.Transaction], error) {
			if !filter.Uncategorized || filter.BatchID != "b1" {
				t.Errorf("unexpected filter %+v", filter)
			}
			resp := pagination.NewPageResponse(pages[filter.Page], filter.Page, 2, 3)
			return &resp, nil
		},
	}

	got, err := NewClassifier(backend).Pending(context.Background(), "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[2].ID != 3 {
		t.Errorf("expected 3 transactions across pages, got %+v", got)
	}
	if !equal(backend.calls, []string{"list", "list"}) {
		t.Errorf("expected two page requests, got %v", backend.calls)
	}
}
