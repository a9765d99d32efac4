package models

// Rule maps a normalized description pattern to a classification. Pattern
// is unique: saving the same pattern again updates the existing rule.
type Rule struct {
	Base
	Pattern     string `gorm:"uniqueIndex;not null" json:"pattern"`
	Category    string `gorm:"not null;index" json:"category"`
	Subcategory string `gorm:"not null" json:"subcategory"`
	Confidence  int    `gorm:"not null;default:50" json:"confidence"`
	TimesUsed   int    `gorm:"not null;default:1" json:"times_used"`
}
