package matching

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Lakshmi0706/Mogrds/pkg/domains"
	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/search"
	"github.com/Lakshmi0706/Mogrds/pkg/tracing"
)

// Resolver runs the full resolution policy for a query: fuzzy-match against
// the reference set first, and when the match is rejected, escalate to a web
// search and look for a dominant merchant domain among the results.
type Resolver struct {
	logger   ectologger.Logger
	engine   *Engine
	client   *search.Client
	analyzer *domains.Analyzer
}

// NewResolver creates a resolver. A nil search client disables escalation;
// rejected matches then resolve directly to not-found.
func NewResolver(logger ectologger.Logger, engine *Engine, client *search.Client, analyzer *domains.Analyzer) *Resolver {
	if analyzer == nil {
		analyzer = domains.NewAnalyzer()
	}
	return &Resolver{
		logger:   logger,
		engine:   engine,
		client:   client,
		analyzer: analyzer,
	}
}

// Resolve matches the query and, when the reference match does not clear the
// threshold, escalates to search-based domain analysis. The fuzzy candidates
// are kept on the result either way so callers can audit the near misses.
func (r *Resolver) Resolve(ctx context.Context, query string) (*models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Resolver.Resolve")
	defer span.End()

	result := r.engine.Match(ctx, query)
	if result.Accepted || r.client == nil {
		return result, nil
	}

	results, err := r.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(results))
	for _, res := range results {
		urls = append(urls, res.URL)
	}
	hosts := r.analyzer.FilterHosts(urls)

	dominant, ok := domains.Analyze(hosts)
	if !ok {
		r.logger.WithContext(ctx).WithFields(map[string]any{
			"query":      query,
			"host_count": len(hosts),
		}).Debug("No dominant domain in search results")
		return result, nil
	}

	result.Accepted = true
	result.BestMatch = dominant
	result.BestScore = domains.Share(hosts, dominant)
	result.Source = models.MatchSourceSearch

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"query":  query,
		"domain": dominant,
		"share":  result.BestScore,
	}).Info("Resolved query via search escalation")

	return result, nil
}
