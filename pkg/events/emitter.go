package events

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/tracing"
)

// Publisher delivers events downstream. The Kafka producer implements this.
type Publisher interface {
	PublishResolutionEvent(ctx context.Context, event *ResolutionEvent) error
	PublishBatchCompletedEvent(ctx context.Context, event *BatchCompletedEvent) error
}

// Emitter builds and publishes resolution events. A nil publisher makes every
// emit a no-op, for running without a downstream topic.
type Emitter struct {
	logger    ectologger.Logger
	publisher Publisher
}

// NewEmitter creates an event emitter
func NewEmitter(logger ectologger.Logger, publisher Publisher) *Emitter {
	return &Emitter{
		logger:    logger,
		publisher: publisher,
	}
}

// EmitResolution publishes the result of one resolved query.
func (e *Emitter) EmitResolution(ctx context.Context, batchID, rowID string, result models.ResultRecord) error {
	if e.publisher == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitResolution")
	defer span.End()

	event := &ResolutionEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeQueryResolved,
		BatchID:   batchID,
		RowID:     rowID,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}

	if err := e.publisher.PublishResolutionEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_id": batchID,
			"row_id":   rowID,
		}).Error("Failed to emit resolution event")
		return err
	}

	return nil
}

// EmitBatchCompleted publishes the summary for a finished batch.
func (e *Emitter) EmitBatchCompleted(ctx context.Context, batchID string, summary BatchSummary) error {
	if e.publisher == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitBatchCompleted")
	defer span.End()

	event := &BatchCompletedEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeBatchCompleted,
		BatchID:   batchID,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}

	if err := e.publisher.PublishBatchCompletedEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_id": batchID,
		}).Error("Failed to emit batch completed event")
		return err
	}

	return nil
}
