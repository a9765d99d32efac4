package models

import (
	"time"

	"finboard/internal/uuid"

	"gorm.io/gorm"
)

// ImportBatch is the set of transactions loaded from one uploaded file.
type ImportBatch struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`
	FileHash     string    `gorm:"uniqueIndex;size:64;not null" json:"file_hash"`
	ImportedAt   time.Time `gorm:"not null" json:"imported_at"`
	RowsInserted int       `gorm:"not null;default:0" json:"rows_inserted"`

	// Filled by listing queries, not stored.
	TransactionCount int64 `gorm:"-" json:"transaction_count"`
}

// BeforeCreate hook generates a UUIDv7 for new batches
func (b *ImportBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	if b.ImportedAt.IsZero() {
		b.ImportedAt = time.Now()
	}
	return nil
}
