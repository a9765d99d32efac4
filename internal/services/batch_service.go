package services

import (
	"context"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/models"
)

// batchService handles statement imports and their rollback.
type batchService struct {
	db        *gorm.DB
	publisher EventPublisher
}

// NewBatchService creates a new BatchServicer. A nil publisher disables
// batch.imported events.
func NewBatchService(db *gorm.DB, publisher EventPublisher) BatchServicer {
	return &batchService{db: db, publisher: publisher}
}

// FileHash returns the hex BLAKE2b-256 digest used to detect re-uploads.
func FileHash(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ImportBatch parses an uploaded statement and stores it as one batch. The
// same file can only be imported once.
func (s *batchService) ImportBatch(ctx context.Context, filename string, content []byte) (*models.ImportBatch, error) {
	if len(content) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidFile, "The uploaded file is empty")
	}

	rows, err := parseStatement(content)
	if err != nil {
		return nil, err
	}

	hash := FileHash(content)
	batch := &models.ImportBatch{
		Filename:     filename,
		FileHash:     hash,
		RowsInserted: len(rows),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.ImportBatch{}).Where("file_hash = ?", hash).Count(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if existing > 0 {
			return apperrors.ErrDuplicateBatch
		}

		if err := tx.Create(batch).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		transactions := make([]models.Transaction, len(rows))
		for i, row := range rows {
			transactions[i] = models.Transaction{
				Date:        row.Date,
				Description: row.Description,
				Amount:      row.Amount,
				BatchID:     &batch.ID,
			}
		}
		if err := tx.CreateInBatches(transactions, 500).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	batch.TransactionCount = int64(len(rows))

	logger.Get().Infow("batch imported", "batch_id", batch.ID, "filename", filename, "rows", len(rows))

	if s.publisher != nil {
		event := BatchImported{
			BatchID:    batch.ID,
			Filename:   batch.Filename,
			Rows:       batch.RowsInserted,
			ImportedAt: batch.ImportedAt,
		}
		if err := s.publisher.PublishBatchImported(ctx, event); err != nil {
			logger.Get().Warnw("failed to publish batch imported event", "batch_id", batch.ID, "error", err)
		}
	}

	return batch, nil
}

// ListBatches returns every batch, newest first, with its current row count.
func (s *batchService) ListBatches() ([]models.ImportBatch, error) {
	var batches []models.ImportBatch
	if err := s.db.Order("imported_at DESC").Find(&batches).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var counts []struct {
		BatchID string
		Count   int64
	}
	if err := s.db.Model(&models.Transaction{}).
		Select("batch_id, COUNT(*) AS count").
		Where("batch_id IS NOT NULL").
		Group("batch_id").
		Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byBatch := make(map[string]int64, len(counts))
	for _, c := range counts {
		byBatch[c.BatchID] = c.Count
	}
	for i := range batches {
		batches[i].TransactionCount = byBatch[batches[i].ID]
	}
	if batches == nil {
		batches = []models.ImportBatch{}
	}
	return batches, nil
}

// DeleteBatch removes a batch together with every transaction it imported
// and returns how many transactions were removed.
func (s *batchService) DeleteBatch(id string) (int64, error) {
	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var batch models.ImportBatch
		if err := tx.Where("id = ?", id).First(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrBatchNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result := tx.Where("batch_id = ?", id).Delete(&models.Transaction{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		deleted = result.RowsAffected

		if err := tx.Delete(&batch).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
