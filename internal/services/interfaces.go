package services

import (
	"context"
	"time"

	"finboard/internal/models"
	"finboard/internal/pagination"
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	BatchID       *string
	Category      *string
	Uncategorized bool
	Month         *time.Time
	Query         string
}

// TransactionUpdate carries the fields of a partial transaction edit. Nil
// fields are left untouched.
type TransactionUpdate struct {
	Description *string
	Category    *string
	Subcategory *string
}

// Empty reports whether the update carries no field at all.
func (u TransactionUpdate) Empty() bool {
	return u.Description == nil && u.Category == nil && u.Subcategory == nil
}

// CategoryTotal is the signed sum of one classification within a summary.
type CategoryTotal struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Total       int64  `json:"total"`
	Count       int64  `json:"count"`
}

// Summary aggregates the movements of one month, or of all time.
type Summary struct {
	Month         string          `json:"month,omitempty"`
	Income        int64           `json:"income"`
	Expense       int64           `json:"expense"`
	Net           int64           `json:"net"`
	Uncategorized int64           `json:"uncategorized"`
	Categories    []CategoryTotal `json:"categories"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(id uint) (*models.Transaction, error)
	UpdateTransaction(id uint, fields TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id uint) error
	Summary(month *time.Time) (*Summary, error)
}

// ApplyRulesParams selects the transactions a bulk rule application may touch.
type ApplyRulesParams struct {
	BatchID           *string
	OnlyUncategorized bool
	Month             *time.Time
	MaxConfidence     *int
}

// ApplyStat counts the transactions one classification was assigned to.
type ApplyStat struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Count       int    `json:"count"`
}

// ApplyResult reports what a bulk rule application did.
type ApplyResult struct {
	Evaluated int         `json:"evaluated_count"`
	Updated   int         `json:"updated_count"`
	Stats     []ApplyStat `json:"stats"`
}

// RuleServicer defines the contract for learned classification rules.
type RuleServicer interface {
	CreateRule(pattern, category, subcategory string) (*models.Rule, error)
	ListRules(category string) ([]models.Rule, error)
	ApplyRules(params ApplyRulesParams) (*ApplyResult, error)
}

// ImportRow is one parsed line of an uploaded statement.
type ImportRow struct {
	Date        time.Time
	Description string
	Amount      int64
}

// BatchServicer defines the contract for import batches.
type BatchServicer interface {
	ImportBatch(ctx context.Context, filename string, content []byte) (*models.ImportBatch, error)
	ListBatches() ([]models.ImportBatch, error)
	DeleteBatch(id string) (int64, error)
}

// BatchImported is published once a batch and its rows are committed.
type BatchImported struct {
	BatchID    string    `json:"batch_id"`
	Filename   string    `json:"filename"`
	Rows       int       `json:"rows"`
	ImportedAt time.Time `json:"imported_at"`
}

// EventPublisher delivers domain events to other processes.
type EventPublisher interface {
	PublishBatchImported(ctx context.Context, event BatchImported) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(actor, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
