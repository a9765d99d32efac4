package events

import (
	"context"
	"errors"

	apperrors "finboard/internal/errors"
	"finboard/internal/logger"
	"finboard/internal/services"
)

// Handler processes one decoded message. Returning an error requeues it once;
// a second failure of the same delivery drops it.
type Handler func(ctx context.Context, msg *BatchImportedMessage) error

type outcome int

const (
	drop outcome = iota
	ack
	requeue
)

func dispatch(ctx context.Context, body []byte, redelivered bool, handler Handler) outcome {
	log := logger.Named("events")

	msg, err := BatchImportedMessageFromJSON(body)
	if err != nil {
		log.Errorw("Failed to decode message", "error", err)
		return drop
	}

	if err := handler(ctx, msg); err != nil {
		if redelivered {
			log.Errorw("Dropping message after repeated failure", "error", err, "batch_id", msg.BatchID)
			return drop
		}
		log.Errorw("Failed to handle message", "error", err, "batch_id", msg.BatchID)
		return requeue
	}
	return ack
}

// ApplyRulesOnImport returns a handler that applies the learned rules to the
// uncategorized rows of each imported batch. Re-delivery is harmless: rows
// classified by the first run are no longer uncategorized. A batch deleted
// before the message arrives is acknowledged and skipped.
func ApplyRulesOnImport(rules services.RuleServicer) Handler {
	return func(ctx context.Context, msg *BatchImportedMessage) error {
		batchID := msg.BatchID
		result, err := rules.ApplyRules(services.ApplyRulesParams{
			BatchID:           &batchID,
			OnlyUncategorized: true,
		})
		if errors.Is(err, apperrors.ErrBatchNotFound) {
			logger.Get().Warnw("Skipping rules for deleted batch", "batch_id", batchID)
			return nil
		}
		if err != nil {
			return err
		}

		logger.Get().Infow("Applied rules to imported batch",
			"batch_id", batchID,
			"evaluated", result.Evaluated,
			"updated", result.Updated,
		)
		return nil
	}
}
