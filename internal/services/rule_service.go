package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/pattern"
	"finboard/internal/taxonomy"
)

const (
	initialRuleConfidence = 50
	correctionBoost       = 10
	matchBoost            = 1
	maxConfidence         = 100
	learnedRuleFloor      = 95
)

// ruleService handles learned classification rules.
type ruleService struct {
	db       *gorm.DB
	taxonomy *taxonomy.Table
}

// NewRuleService creates a new RuleServicer.
func NewRuleService(db *gorm.DB, table *taxonomy.Table) RuleServicer {
	return &ruleService{db: db, taxonomy: table}
}

// CreateRule stores a classification for a pattern. Saving an existing
// pattern again counts as a repeated correction: the newest classification
// wins and the rule gains confidence.
func (s *ruleService) CreateRule(rawPattern, category, subcategory string) (*models.Rule, error) {
	normalized := pattern.Normalize(rawPattern)
	if normalized == "" {
		return nil, apperrors.ErrInvalidPattern
	}
	category = strings.TrimSpace(category)
	subcategory = strings.TrimSpace(subcategory)
	if subcategory == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidClassification, "A rule needs a subcategory")
	}
	if err := validateClassification(s.taxonomy, category, subcategory); err != nil {
		return nil, err
	}

	var rule models.Rule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("pattern = ?", normalized).First(&rule).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rule = models.Rule{
				Pattern:     normalized,
				Category:    category,
				Subcategory: subcategory,
				Confidence:  initialRuleConfidence,
				TimesUsed:   1,
			}
			return tx.Create(&rule).Error
		case err != nil:
			return err
		}

		rule.Category = category
		rule.Subcategory = subcategory
		rule.TimesUsed++
		rule.Confidence = min(maxConfidence, rule.Confidence+correctionBoost)
		return tx.Save(&rule).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// ListRules returns rules in matching priority order, optionally restricted
// to one category.
func (s *ruleService) ListRules(category string) ([]models.Rule, error) {
	q := s.db.Model(&models.Rule{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rules []models.Rule
	if err := q.Order("confidence DESC").Order("times_used DESC").Order("id ASC").Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rules == nil {
		rules = []models.Rule{}
	}
	return rules, nil
}

// ApplyRules classifies the selected transactions with the first matching
// rule. Manual classifications are never overwritten. Rule counters and
// transaction updates commit together or not at all.
func (s *ruleService) ApplyRules(params ApplyRulesParams) (*ApplyResult, error) {
	if params.MaxConfidence != nil && (*params.MaxConfidence < 1 || *params.MaxConfidence > maxConfidence) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "max_confidence must be between 1 and 100")
	}

	result := &ApplyResult{Stats: []ApplyStat{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if params.BatchID != nil {
			var count int64
			if err := tx.Model(&models.ImportBatch{}).Where("id = ?", *params.BatchID).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count == 0 {
				return apperrors.ErrBatchNotFound
			}
		}

		var rules []models.Rule
		if err := tx.Order("confidence DESC").Order("times_used DESC").Order("id ASC").Find(&rules).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(rules) == 0 {
			return nil
		}

		q := tx.Model(&models.Transaction{})
		if params.BatchID != nil {
			q = q.Where("batch_id = ?", *params.BatchID)
		}
		if params.OnlyUncategorized {
			q = q.Where(uncategorizedClause)
		}
		if params.Month != nil {
			q = whereMonth(q, *params.Month)
		}
		if params.MaxConfidence != nil {
			q = q.Where("confidence < ?", *params.MaxConfidence)
		}

		var transactions []models.Transaction
		if err := q.Order("id ASC").Find(&transactions).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		touched := make(map[uint]bool)
		stats := make(map[[2]string]int)
		for i := range transactions {
			t := &transactions[i]
			result.Evaluated++
			if t.IsManual() {
				continue
			}

			idx := firstMatch(rules, t.Description)
			if idx < 0 {
				continue
			}
			rule := rules[idx]

			category, subcategory := rule.Category, rule.Subcategory
			if err := tx.Model(t).Updates(map[string]interface{}{
				"category":          category,
				"subcategory":       subcategory,
				"confidence":        max(learnedRuleFloor, rule.Confidence),
				"confidence_source": models.ConfidenceSourceLearnedRule,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			rules[idx].TimesUsed++
			rules[idx].Confidence = min(maxConfidence, rules[idx].Confidence+matchBoost)
			touched[rule.ID] = true
			promote(rules, idx)

			result.Updated++
			stats[[2]string{category, subcategory}]++
		}

		for i := range rules {
			if !touched[rules[i].ID] {
				continue
			}
			if err := tx.Model(&rules[i]).Updates(map[string]interface{}{
				"confidence": rules[i].Confidence,
				"times_used": rules[i].TimesUsed,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		for key, count := range stats {
			result.Stats = append(result.Stats, ApplyStat{Category: key[0], Subcategory: key[1], Count: count})
		}
		sort.Slice(result.Stats, func(i, j int) bool {
			if result.Stats[i].Category != result.Stats[j].Category {
				return result.Stats[i].Category < result.Stats[j].Category
			}
			return result.Stats[i].Subcategory < result.Stats[j].Subcategory
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// firstMatch returns the index of the highest-priority rule whose pattern
// matches description, or -1.
func firstMatch(rules []models.Rule, description string) int {
	for i := range rules {
		if pattern.Matches(rules[i].Pattern, description) {
			return i
		}
	}
	return -1
}

// promote moves rules[idx] forward past any rule it now outranks, keeping
// the slice in matching priority order after its counters grew.
func promote(rules []models.Rule, idx int) {
	for idx > 0 && outranks(rules[idx], rules[idx-1]) {
		rules[idx], rules[idx-1] = rules[idx-1], rules[idx]
		idx--
	}
}

func outranks(a, b models.Rule) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.TimesUsed != b.TimesUsed {
		return a.TimesUsed > b.TimesUsed
	}
	return a.ID < b.ID
}
