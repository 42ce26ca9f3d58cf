// Package processor drives resolution of query records, one at a time for
// Kafka messages and sequentially for batches.
package processor

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Lakshmi0706/Mogrds/pkg/appcontext"
	"github.com/Lakshmi0706/Mogrds/pkg/events"
	"github.com/Lakshmi0706/Mogrds/pkg/extractor"
	"github.com/Lakshmi0706/Mogrds/pkg/kafka"
	"github.com/Lakshmi0706/Mogrds/pkg/matching"
	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/tracing"
)

// Sink receives one result record per processed query.
type Sink func(ctx context.Context, record models.ResultRecord) error

// Processor resolves query records and reports results via the emitter.
type Processor struct {
	logger          ectologger.Logger
	resolver        *matching.Resolver
	emitter         *events.Emitter
	extractor       *extractor.Extractor
	descriptionPath string
}

// New creates a processor. descriptionPath locates the merchant description
// inside message payloads; empty means the payload's "description" field.
func New(logger ectologger.Logger, resolver *matching.Resolver, emitter *events.Emitter, descriptionPath string) *Processor {
	if descriptionPath == "" {
		descriptionPath = "description"
	}
	return &Processor{
		logger:          logger,
		resolver:        resolver,
		emitter:         emitter,
		extractor:       extractor.New(),
		descriptionPath: descriptionPath,
	}
}

// ProcessQuery resolves one query string to a result record. Resolution
// failures degrade to a not-found record so one bad query never takes down a
// batch; only context cancellation is returned as an error.
func (p *Processor) ProcessQuery(ctx context.Context, query string) (models.ResultRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.ProcessQuery")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return models.ResultRecord{}, err
	}

	result, err := p.resolver.Resolve(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return models.ResultRecord{}, ctx.Err()
		}
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"query": query,
		}).Error("Failed to resolve query, reporting not found")
		return models.NotFoundResult(query, "").Record(), nil
	}

	return result.Record(), nil
}

// ProcessBatch resolves queries in order, handing each record to the sink as
// it completes. Cancellation is only honored between queries, so no query is
// left half-processed; records already produced stay delivered.
func (p *Processor) ProcessBatch(ctx context.Context, batchID string, queries []string, sink Sink) (events.BatchSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.ProcessBatch")
	defer span.End()

	ctx = appcontext.SetBatchID(ctx, batchID)

	var summary events.BatchSummary
	for _, query := range queries {
		record, err := p.ProcessQuery(ctx, query)
		if err != nil {
			return summary, err
		}

		summary.Total++
		switch {
		case record.Accepted:
			summary.Accepted++
		default:
			summary.NotFound++
		}

		if sink != nil {
			if err := sink(ctx, record); err != nil {
				summary.Failed++
				p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
					"batch_id": batchID,
					"query":    record.Query,
				}).Error("Result sink failed")
			}
		}
	}

	if err := p.emitter.EmitBatchCompleted(ctx, batchID, summary); err != nil {
		return summary, err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_id": batchID,
		"total":    summary.Total,
		"accepted": summary.Accepted,
	}).Info("Batch completed")

	return summary, nil
}

// HandleMessage resolves one consumed query message and emits its result.
// Returning an error leaves the message uncommitted for redelivery.
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.HandleMessage")
	defer span.End()

	query := msg.Query
	if query.BatchID != "" {
		ctx = appcontext.SetBatchID(ctx, query.BatchID)
	}
	description := query.Description
	if description == "" {
		value, err := p.extractor.ExtractString(query.Data, p.descriptionPath)
		if err != nil {
			p.logger.WithContext(ctx).WithError(err).Error("Failed to extract description from message")
			return err
		}
		if value != nil {
			description = *value
		}
	}

	record, err := p.ProcessQuery(ctx, description)
	if err != nil {
		return err
	}

	return p.emitter.EmitResolution(ctx, query.BatchID, query.RowID, record)
}
