package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/taxonomy"
)

// uncategorizedClause matches rows without a usable category. SIN_CATEGORIA
// is the placeholder older imports wrote instead of leaving the column empty.
const uncategorizedClause = "(category IS NULL OR category = '' OR category = 'SIN_CATEGORIA')"

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	taxonomy *taxonomy.Table
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, table *taxonomy.Table) TransactionServicer {
	return &transactionService{db: db, taxonomy: table}
}

// ListTransactions retrieves a paginated, filtered list of transactions, newest first.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.BatchID != nil {
		q = q.Where("batch_id = ?", *f.BatchID)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Uncategorized {
		q = q.Where(uncategorizedClause)
	}
	if f.Month != nil {
		q = whereMonth(q, *f.Month)
	}
	if query := strings.TrimSpace(f.Query); query != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	return q
}

// whereMonth restricts q to the calendar month containing month.
func whereMonth(q *gorm.DB, month time.Time) *gorm.DB {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return q.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
}

// GetTransaction retrieves a transaction by ID.
func (s *transactionService) GetTransaction(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial edit. Any change to the classification
// is treated as a manual correction: confidence 100, source manual.
func (s *transactionService) UpdateTransaction(id uint, fields TransactionUpdate) (*models.Transaction, error) {
	if fields.Empty() {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	transaction, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	if fields.Description != nil {
		description := strings.TrimSpace(*fields.Description)
		if description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must not be empty")
		}
		transaction.Description = description
	}

	if fields.Category != nil || fields.Subcategory != nil {
		category := deref(transaction.Category)
		if fields.Category != nil {
			category = strings.TrimSpace(*fields.Category)
		}
		subcategory := deref(transaction.Subcategory)
		if fields.Subcategory != nil {
			subcategory = strings.TrimSpace(*fields.Subcategory)
		}
		if err := validateClassification(s.taxonomy, category, subcategory); err != nil {
			return nil, err
		}
		transaction.Category = &category
		transaction.Subcategory = nil
		if subcategory != "" {
			transaction.Subcategory = &subcategory
		}
		transaction.Confidence = 100
		transaction.ConfidenceSource = models.ConfidenceSourceManual
	}

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction removes a single transaction.
func (s *transactionService) DeleteTransaction(id uint) error {
	result := s.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Summary totals income, expense and per-classification sums. A nil month
// summarizes every stored transaction.
func (s *transactionService) Summary(month *time.Time) (*Summary, error) {
	scope := func() *gorm.DB {
		q := s.db.Model(&models.Transaction{})
		if month != nil {
			q = whereMonth(q, *month)
		}
		return q
	}

	var totals struct {
		Income  int64
		Expense int64
	}
	if err := scope().
		Select("COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS income, " +
			"COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS expense").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var uncategorized int64
	if err := scope().Where(uncategorizedClause).Count(&uncategorized).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []CategoryTotal
	if err := scope().
		Select("COALESCE(category, '') AS category, COALESCE(subcategory, '') AS subcategory, SUM(amount) AS total, COUNT(*) AS count").
		Where("NOT " + uncategorizedClause).
		Group("COALESCE(category, ''), COALESCE(subcategory, '')").
		Order("category").Order("subcategory").
		Scan(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []CategoryTotal{}
	}

	summary := &Summary{
		Income:        totals.Income,
		Expense:       totals.Expense,
		Net:           totals.Income - totals.Expense,
		Uncategorized: uncategorized,
		Categories:    categories,
	}
	if month != nil {
		summary.Month = month.Format("2006-01")
	}
	return summary, nil
}

// validateClassification checks the pair against the taxonomy and, when it
// is rejected, names the closest valid key in the message. An empty
// subcategory classifies by category alone.
func validateClassification(table *taxonomy.Table, category, subcategory string) error {
	if !table.HasCategory(category) {
		msg := "Unknown category " + quote(category)
		if suggestion := table.SuggestCategory(category); suggestion != "" {
			msg += ", did you mean " + quote(suggestion) + "?"
		}
		return apperrors.WithMessage(apperrors.ErrInvalidClassification, msg)
	}
	if subcategory != "" && !table.Valid(category, subcategory) {
		msg := "Subcategory " + quote(subcategory) + " does not belong to " + category
		if suggestion := table.Suggest(category, subcategory); suggestion != "" {
			msg += ", did you mean " + quote(suggestion) + "?"
		}
		return apperrors.WithMessage(apperrors.ErrInvalidClassification, msg)
	}
	return nil
}

func quote(s string) string {
	return "\"" + s + "\""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
