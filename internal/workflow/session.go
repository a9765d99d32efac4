package workflow

import (
	"errors"
	"strings"

	"finboard/internal/models"
)

// State is the classification step of an edit session.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateCommitted  State = "committed"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

// RuleState is the rule step that follows a committed classification.
type RuleState string

const (
	RuleSkipped    RuleState = "skipped"
	RulePersisting RuleState = "persisting_rule"
	RuleCommitted  RuleState = "rule_committed"
	RuleFailed     RuleState = "rule_failed"
)

// ErrSessionClosed is returned when a finished or cancelled session is
// submitted or cancelled again.
var ErrSessionClosed = errors.New("edit session is no longer open")

// ValidationError is a missing or malformed field caught before any call
// to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// Session is one edit of one transaction. The driver creates it when the
// edit opens, fills the chosen fields and hands it to Classifier.Submit or
// Cancel. A session is single use.
type Session struct {
	TransactionID       uint
	OriginalDescription string

	Description string
	Category    string
	Subcategory string
	Remember    bool

	state     State
	ruleState RuleState
}

// NewSession opens an edit for tx, prefilled with its current values.
func NewSession(tx models.Transaction) *Session {
	s := &Session{
		TransactionID:       tx.ID,
		OriginalDescription: tx.Description,
		Description:         tx.Description,
		state:               StateEditing,
		ruleState:           RuleSkipped,
	}
	if tx.Category != nil {
		s.Category = *tx.Category
	}
	if tx.Subcategory != nil {
		s.Subcategory = *tx.Subcategory
	}
	return s
}

// State returns the classification state.
func (s *Session) State() State { return s.state }

// RuleState returns the rule step state. It stays RuleSkipped unless a
// rule was attempted.
func (s *Session) RuleState() RuleState { return s.ruleState }

// Cancel discards an open session.
func (s *Session) Cancel() error {
	if s.state != StateEditing {
		return ErrSessionClosed
	}
	s.state = StateCancelled
	return nil
}

func (s *Session) validate() error {
	if s.TransactionID == 0 {
		return &ValidationError{Field: "transaction", Message: "no transaction selected"}
	}
	if strings.TrimSpace(s.Description) == "" {
		return &ValidationError{Field: "description", Message: "is required"}
	}
	if strings.TrimSpace(s.Category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	return nil
}
