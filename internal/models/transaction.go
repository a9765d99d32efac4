package models

import "time"

// ConfidenceSource records who assigned a transaction's classification.
type ConfidenceSource string

const (
	ConfidenceSourceNone        ConfidenceSource = ""
	ConfidenceSourceManual      ConfidenceSource = "manual"
	ConfidenceSourceLearnedRule ConfidenceSource = "learned_rule"
)

// Transaction is one bank movement. Category and Subcategory stay nil until
// the movement is classified, either by hand or by a learned rule.
type Transaction struct {
	Base
	Date             time.Time        `gorm:"not null;index" json:"date"`
	Description      string           `gorm:"not null" json:"description"`
	Amount           int64            `gorm:"type:bigint;not null" json:"amount"`
	Category         *string          `gorm:"index" json:"category"`
	Subcategory      *string          `gorm:"index" json:"subcategory"`
	Confidence       int              `gorm:"not null;default:0" json:"confidence"`
	ConfidenceSource ConfidenceSource `gorm:"size:32" json:"confidence_source,omitempty"`
	BatchID          *string          `gorm:"index" json:"batch_id,omitempty"`
}

// IsCategorized reports whether the transaction already carries a category.
func (t *Transaction) IsCategorized() bool {
	return t.Category != nil && *t.Category != ""
}

// IsManual reports whether the classification was set by a person.
func (t *Transaction) IsManual() bool {
	return t.ConfidenceSource == ConfidenceSourceManual
}
