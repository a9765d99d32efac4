package events

import (
	"encoding/json"
	"time"

	"finboard/internal/services"
)

// BatchImportedMessage announces that an import batch and its rows are
// committed. It carries only identifiers; consumers read the rows from the
// database.
type BatchImportedMessage struct {
	BatchID   string    `json:"batch_id"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBatchImportedMessage builds a message from the service-level event.
func NewBatchImportedMessage(event services.BatchImported) *BatchImportedMessage {
	ts := event.ImportedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return &BatchImportedMessage{
		BatchID:   event.BatchID,
		Filename:  event.Filename,
		Rows:      event.Rows,
		Timestamp: ts,
	}
}

// ToJSON converts the message to JSON bytes
func (m *BatchImportedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BatchImportedMessageFromJSON decodes a message body. A body without a
// batch id is rejected.
func BatchImportedMessageFromJSON(data []byte) (*BatchImportedMessage, error) {
	var msg BatchImportedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.BatchID == "" {
		return nil, errMissingBatchID
	}
	return &msg, nil
}
