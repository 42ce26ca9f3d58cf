// Package kafka handles ingestion of query records and emission of
// resolution results.
package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

// QueryMessage is one noisy merchant description to resolve. Data carries the
// full decoded payload so the description can live at a configurable path
// inside it.
type QueryMessage struct {
	BatchID     string         `json:"batch_id,omitempty"`
	RowID       string         `json:"row_id,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"-"`
}

// IncomingMessage is a raw consumed Kafka message plus its parsed payload.
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	Query *QueryMessage
}

// ParseQueryMessage decodes the message value into a QueryMessage. The raw
// payload is kept on Data so a configured description path can still reach
// fields outside the envelope.
func (m *IncomingMessage) ParseQueryMessage() error {
	if len(m.Value) == 0 {
		return fmt.Errorf("empty message value")
	}

	var query QueryMessage
	if err := json.Unmarshal(m.Value, &query); err != nil {
		return fmt.Errorf("failed to parse query message: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(m.Value, &data); err != nil {
		return fmt.Errorf("failed to parse query payload: %w", err)
	}
	query.Data = data

	m.Query = &query
	return nil
}
