// Package workflow drives the classification interactions: editing one
// transaction and optionally learning a rule from it, deleting a
// transaction, and importing a statement followed by a bulk rule pass.
//
// Each interaction runs to completion before the caller starts the next.
// Primary operations report failure through the returned error; secondary
// ones (rule persistence, the bulk pass after an import) never do and are
// reported as warnings on their own result field and the Notifier.
package workflow

import (
	"context"

	"finboard/internal/client"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
)

// Backend is the API the workflow drives. *client.Client implements it.
type Backend interface {
	UpdateTransaction(ctx context.Context, id uint, fields client.TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
	ListTransactions(ctx context.Context, filter client.ListFilter) (*pagination.PageResponse[models.Transaction], error)
	CreateRule(ctx context.Context, in client.RuleInput) (*models.Rule, error)
	ApplyRules(ctx context.Context, in client.ApplyInput) (*services.ApplyResult, error)
	ImportBatch(ctx context.Context, filename string, content []byte) (*models.ImportBatch, error)
}

var _ Backend = (*client.Client)(nil)

// Option configures a Classifier or an Importer.
type Option func(*settings)

type settings struct {
	maxWords int
	notifier Notifier
	refresh  func(ctx context.Context)
}

func newSettings(opts []Option) settings {
	s := settings{notifier: discard{}, refresh: func(context.Context) {}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithMaxWords sets how many leading words a learned pattern keeps.
// Non-positive values keep the default.
func WithMaxWords(n int) Option {
	return func(s *settings) { s.maxWords = n }
}

// WithNotifier routes status events to n.
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithRefresh sets the hook run after an import or bulk pass so views can
// reload. It runs even when the bulk pass failed.
func WithRefresh(fn func(ctx context.Context)) Option {
	return func(s *settings) {
		if fn != nil {
			s.refresh = fn
		}
	}
}
