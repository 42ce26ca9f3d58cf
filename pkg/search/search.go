// Package search wraps an external web-search provider behind a rate-limited,
// failure-tolerant client used by the resolver's escalation path.
package search

import (
	"context"
	"math/rand"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/tracing"
)

// Provider performs a web search for a query and returns up to maxResults
// results. Implementations are expected to be safe for concurrent use.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
}

// Delay paces successive outbound searches. Wait blocks until the pace
// allows another request or the context is done.
type Delay interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits the same duration before every request.
type FixedDelay struct {
	Duration time.Duration
}

func (d FixedDelay) Wait(ctx context.Context) error {
	return sleep(ctx, d.Duration)
}

// JitterDelay waits a uniformly random duration in [Min, Max] before every
// request, to avoid a detectable fixed cadence against the provider.
type JitterDelay struct {
	Min time.Duration
	Max time.Duration
}

func (d JitterDelay) Wait(ctx context.Context) error {
	wait := d.Min
	if d.Max > d.Min {
		wait += time.Duration(rand.Int63n(int64(d.Max - d.Min + 1)))
	}
	return sleep(ctx, wait)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Client paces and bounds calls to a Provider, and downgrades provider
// failures to an empty result set. A search outage must never fail the
// query being resolved; it only removes the escalation signal.
type Client struct {
	logger     ectologger.Logger
	provider   Provider
	delay      Delay
	timeout    time.Duration
	maxResults int
}

// NewClient creates a search client. A nil delay disables pacing.
func NewClient(logger ectologger.Logger, provider Provider, delay Delay, timeout time.Duration, maxResults int) *Client {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Client{
		logger:     logger,
		provider:   provider,
		delay:      delay,
		timeout:    timeout,
		maxResults: maxResults,
	}
}

// Search runs one paced, bounded provider search. Provider errors are logged
// and mapped to nil results; a cancelled context is returned as-is so the
// caller can stop a batch.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "search.Client.Search")
	defer span.End()

	if c.delay != nil {
		if err := c.delay.Wait(ctx); err != nil {
			return nil, err
		}
	}

	searchCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	results, err := c.provider.Search(searchCtx, query, c.maxResults)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"query": query,
		}).Warn("Search provider failed, continuing without search results")
		return nil, nil
	}

	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	return results, nil
}
