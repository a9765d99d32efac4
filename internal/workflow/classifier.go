package workflow

import (
	"context"
	"fmt"
	"strings"

	"finboard/internal/client"
	"finboard/internal/models"
	"finboard/internal/pattern"
)

// Outcome is the result of a submitted session. Transaction is the primary
// result; Rule is reported separately and never turns a committed
// classification into a failure.
type Outcome struct {
	Transaction *models.Transaction
	Rule        RuleOutcome
}

// RuleOutcome describes the rule step.
type RuleOutcome struct {
	State   RuleState
	Pattern string
	Rule    *models.Rule
	Err     error
}

// Classifier submits edit sessions and deletions.
type Classifier struct {
	backend Backend
	settings
}

// NewClassifier creates a Classifier over backend.
func NewClassifier(backend Backend, opts ...Option) *Classifier {
	return &Classifier{backend: backend, settings: newSettings(opts)}
}

// Submit sends the session's classification and, when the session asks to
// remember it, learns a rule from the description.
//
// A validation error leaves the session in StateEditing. A backend error
// moves it to StateFailed and no rule is attempted. Once the update is
// committed Submit returns a nil error whatever happens to the rule.
func (c *Classifier) Submit(ctx context.Context, s *Session) (*Outcome, error) {
	if s.state != StateEditing {
		return nil, ErrSessionClosed
	}
	if err := s.validate(); err != nil {
		c.notifier.Notify(Event{Level: LevelFailure, Message: "Cannot save: " + err.Error()})
		return nil, err
	}

	description := strings.TrimSpace(s.Description)
	category := strings.TrimSpace(s.Category)
	subcategory := strings.TrimSpace(s.Subcategory)

	s.state = StateSubmitting
	tx, err := c.backend.UpdateTransaction(ctx, s.TransactionID, client.TransactionUpdate{
		Description: &description,
		Category:    &category,
		Subcategory: &subcategory,
	})
	if err != nil {
		s.state = StateFailed
		c.notifier.Notify(Event{Level: LevelFailure, Message: fmt.Sprintf("Could not update transaction %d: %s", s.TransactionID, err)})
		return nil, err
	}
	s.state = StateCommitted
	c.notifier.Notify(Event{Level: LevelSuccess, Message: fmt.Sprintf("Transaction %d classified as %s", s.TransactionID, classification(category, subcategory))})

	out := &Outcome{Transaction: tx, Rule: RuleOutcome{State: RuleSkipped}}
	if !s.Remember {
		return out, nil
	}

	out.Rule = c.learn(ctx, s, description, category, subcategory)
	s.ruleState = out.Rule.State
	return out, nil
}

func (c *Classifier) learn(ctx context.Context, s *Session, description, category, subcategory string) RuleOutcome {
	if subcategory == "" {
		c.notifier.Notify(Event{Level: LevelWarning, Message: "No rule saved: a rule needs a subcategory"})
		return RuleOutcome{State: RuleSkipped}
	}
	p := pattern.Derive(description, c.maxWords)
	if p == "" {
		c.notifier.Notify(Event{Level: LevelWarning, Message: "No rule saved: the description has no usable words"})
		return RuleOutcome{State: RuleSkipped}
	}

	s.ruleState = RulePersisting
	rule, err := c.backend.CreateRule(ctx, client.RuleInput{Pattern: p, Category: category, Subcategory: subcategory})
	if err != nil {
		c.notifier.Notify(Event{Level: LevelWarning, Message: fmt.Sprintf("Classification saved, but the rule %q was not: %s", p, err)})
		return RuleOutcome{State: RuleFailed, Pattern: p, Err: err}
	}

	c.notifier.Notify(Event{Level: LevelSuccess, Message: fmt.Sprintf("Rule saved: %s -> %s / %s", p, category, subcategory)})
	return RuleOutcome{State: RuleCommitted, Pattern: p, Rule: rule}
}

// Delete removes one transaction.
func (c *Classifier) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		err := &ValidationError{Field: "transaction", Message: "no transaction selected"}
		c.notifier.Notify(Event{Level: LevelFailure, Message: "Cannot delete: " + err.Error()})
		return err
	}
	if err := c.backend.DeleteTransaction(ctx, id); err != nil {
		c.notifier.Notify(Event{Level: LevelFailure, Message: fmt.Sprintf("Could not delete transaction %d: %s", id, err)})
		return err
	}
	c.notifier.Notify(Event{Level: LevelSuccess, Message: fmt.Sprintf("Transaction %d deleted", id)})
	return nil
}

// Pending lists the transactions of a batch that still lack a category,
// following pages until the listing is exhausted. An empty batchID lists
// across all batches.
func (c *Classifier) Pending(ctx context.Context, batchID string) ([]models.Transaction, error) {
	var out []models.Transaction
	filter := client.ListFilter{BatchID: batchID, Uncategorized: true, Page: 1}
	for {
		page, err := c.backend.ListTransactions(ctx, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Data...)
		if page.Page >= page.TotalPages || len(page.Data) == 0 {
			return out, nil
		}
		filter.Page = page.Page + 1
	}
}

func classification(category, subcategory string) string {
	if subcategory == "" {
		return category
	}
	return category + " / " + subcategory
}
