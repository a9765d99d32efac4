package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"finboard/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestBatch creates an import batch with the given ID and a unique file hash.
func CreateTestBatch(t *testing.T, db *gorm.DB, id string) *models.ImportBatch {
	t.Helper()

	batch := &models.ImportBatch{
		ID:       id,
		Filename: fmt.Sprintf("extracto-%d.csv", nextID()),
		FileHash: fmt.Sprintf("%064d", nextID()),
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("failed to create test batch: %v", err)
	}
	return batch
}

// CreateTestTransaction creates an uncategorized transaction dated today.
// An empty batchID leaves the transaction outside any batch.
func CreateTestTransaction(t *testing.T, db *gorm.DB, batchID, description string, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, batchID, description, amount, time.Now().UTC())
}

// CreateTestTransactionOn creates an uncategorized transaction on the given date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, batchID, description string, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
	}
	if batchID != "" {
		transaction.BatchID = &batchID
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestClassifiedTransaction creates a transaction that already carries
// a classification from the given source.
func CreateTestClassifiedTransaction(t *testing.T, db *gorm.DB, batchID, description, category, subcategory string, source models.ConfidenceSource) *models.Transaction {
	t.Helper()

	transaction := CreateTestTransaction(t, db, batchID, description, -1000)
	transaction.Category = &category
	transaction.Subcategory = &subcategory
	transaction.ConfidenceSource = source
	transaction.Confidence = 100
	if source == models.ConfidenceSourceLearnedRule {
		transaction.Confidence = 95
	}
	if err := db.Save(transaction).Error; err != nil {
		t.Fatalf("failed to classify test transaction: %v", err)
	}
	return transaction
}

// CreateTestRule creates a rule with explicit confidence and usage counters.
func CreateTestRule(t *testing.T, db *gorm.DB, pattern, category, subcategory string, confidence, timesUsed int) *models.Rule {
	t.Helper()

	rule := &models.Rule{
		Pattern:     pattern,
		Category:    category,
		Subcategory: subcategory,
		Confidence:  confidence,
		TimesUsed:   timesUsed,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}
	return rule
}
