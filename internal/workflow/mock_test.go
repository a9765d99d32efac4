package workflow

import (
	"context"

	"finboard/internal/client"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
)

// mockBackend records every call in order.
type mockBackend struct {
	calls []string

	updateFn func(id uint, fields client.TransactionUpdate) (*models.Transaction, error)
	deleteFn func(id uint) error
	listFn   func(filter client.ListFilter) (*pagination.PageResponse[models.Transaction], error)
	ruleFn   func(in client.RuleInput) (*models.Rule, error)
	applyFn  func(in client.ApplyInput) (*services.ApplyResult, error)
	importFn func(filename string, content []byte) (*models.ImportBatch, error)
}

var _ Backend = (*mockBackend)(nil)

func (m *mockBackend) UpdateTransaction(_ context.Context, id uint, fields client.TransactionUpdate) (*models.Transaction, error) {
	m.calls = append(m.calls, "update")
	return m.updateFn(id, fields)
}

func (m *mockBackend) DeleteTransaction(_ context.Context, id uint) error {
	m.calls = append(m.calls, "delete")
	return m.deleteFn(id)
}

func (m *mockBackend) ListTransactions(_ context.Context, filter client.ListFilter) (*pagination.PageResponse[models.Transaction], error) {
	m.calls = append(m.calls, "list")
	return m.listFn(filter)
}

func (m *mockBackend) CreateRule(_ context.Context, in client.RuleInput) (*models.Rule, error) {
	m.calls = append(m.calls, "rule")
	return m.ruleFn(in)
}

func (m *mockBackend) ApplyRules(_ context.Context, in client.ApplyInput) (*services.ApplyResult, error) {
	m.calls = append(m.calls, "apply")
	return m.applyFn(in)
}

func (m *mockBackend) ImportBatch(_ context.Context, filename string, content []byte) (*models.ImportBatch, error) {
	m.calls = append(m.calls, "import")
	return m.importFn(filename, content)
}

// recorder collects status events.
type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) levels() []Level {
	out := make([]Level, len(r.events))
	for i, e := range r.events {
		out[i] = e.Level
	}
	return out
}

func equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
