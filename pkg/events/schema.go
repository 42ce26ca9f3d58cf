// Package events defines the resolution event schema emitted downstream.
package events

import (
	"time"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
)

const (
	EventTypeQueryResolved  = "query.resolved"
	EventTypeBatchCompleted = "batch.completed"
)

// ResolutionEvent reports the outcome of resolving one query record.
type ResolutionEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	BatchID   string              `json:"batch_id,omitempty"`
	RowID     string              `json:"row_id,omitempty"`
	Result    models.ResultRecord `json:"result"`
	Timestamp time.Time           `json:"timestamp"`
}

// BatchSummary counts outcomes across one batch of query records.
type BatchSummary struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	NotFound int `json:"not_found"`
	Failed   int `json:"failed"`
}

// BatchCompletedEvent reports that every record in a batch has a result.
type BatchCompletedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	BatchID   string       `json:"batch_id"`
	Summary   BatchSummary `json:"summary"`
	Timestamp time.Time    `json:"timestamp"`
}
