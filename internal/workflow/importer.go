package workflow

import (
	"context"
	"fmt"
	"strings"

	"finboard/internal/client"
	"finboard/internal/models"
	"finboard/internal/services"
)

// ImportOutcome is the result of an import. Batch is the primary result;
// Apply reports the bulk rule pass that follows it.
type ImportOutcome struct {
	Batch *models.ImportBatch
	Apply ApplyOutcome
}

// ApplyOutcome describes a bulk rule pass. Err is a warning, never the
// import's failure.
type ApplyOutcome struct {
	Result *services.ApplyResult
	Err    error
}

// Importer uploads statements and runs the learned rules over them.
type Importer struct {
	backend Backend
	settings
}

// NewImporter creates an Importer over backend.
func NewImporter(backend Backend, opts ...Option) *Importer {
	return &Importer{backend: backend, settings: newSettings(opts)}
}

// Import uploads one statement file, then applies the rules to the rows
// of the new batch that have no category. Only the upload can fail the
// import; the refresh hook runs once the upload succeeded.
func (i *Importer) Import(ctx context.Context, filename string, content []byte) (*ImportOutcome, error) {
	if strings.TrimSpace(filename) == "" {
		err := &ValidationError{Field: "file", Message: "is required"}
		i.notifier.Notify(Event{Level: LevelFailure, Message: "Cannot import: " + err.Error()})
		return nil, err
	}

	batch, err := i.backend.ImportBatch(ctx, filename, content)
	if err != nil {
		i.notifier.Notify(Event{Level: LevelFailure, Message: fmt.Sprintf("Could not import %s: %s", filename, err)})
		return nil, err
	}
	i.notifier.Notify(Event{Level: LevelSuccess, Message: fmt.Sprintf("Imported %d transactions from %s", batch.RowsInserted, filename)})

	out := &ImportOutcome{Batch: batch}
	result, err := i.backend.ApplyRules(ctx, client.ApplyInput{BatchID: batch.ID, OnlyUncategorized: true})
	if err != nil {
		out.Apply.Err = err
		i.notifier.Notify(Event{Level: LevelWarning, Message: "Imported, but rules could not be applied: " + err.Error()})
	} else {
		out.Apply.Result = result
		i.notifier.Notify(Event{Level: LevelSuccess, Message: appliedMessage(result)})
	}

	i.refresh(ctx)
	return out, nil
}

// ApplyToBatch runs the rules over the uncategorized rows of one batch as
// an interaction of its own, so its failure is returned.
func (i *Importer) ApplyToBatch(ctx context.Context, batchID string) (*services.ApplyResult, error) {
	if strings.TrimSpace(batchID) == "" {
		err := &ValidationError{Field: "batch", Message: "is required"}
		i.notifier.Notify(Event{Level: LevelFailure, Message: "Cannot apply rules: " + err.Error()})
		return nil, err
	}

	result, err := i.backend.ApplyRules(ctx, client.ApplyInput{BatchID: batchID, OnlyUncategorized: true})
	if err != nil {
		i.notifier.Notify(Event{Level: LevelFailure, Message: "Could not apply rules: " + err.Error()})
		return nil, err
	}
	i.notifier.Notify(Event{Level: LevelSuccess, Message: appliedMessage(result)})
	i.refresh(ctx)
	return result, nil
}

func appliedMessage(result *services.ApplyResult) string {
	return fmt.Sprintf("Rules applied: %d of %d transactions classified", result.Updated, result.Evaluated)
}
