// Package matching implements the merchant record-linkage engine: a
// multi-signal scorer, a top-K ranking matcher with a threshold decision,
// and a resolver that runs the full escalation policy.
package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/Gobusters/ectologger"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/normalizers"
	"github.com/Lakshmi0706/Mogrds/pkg/reference"
	"github.com/Lakshmi0706/Mogrds/pkg/tracing"
)

// Config contains configuration for the match engine.
type Config struct {
	Threshold   float64  // Minimum top-candidate score to accept (default: 0.8)
	TopK        int      // Number of ranked candidates to return (default: 3)
	NoiseTokens []string // Whole-word tokens stripped from queries before scoring
	Normalizers []string // Named normalizers applied to queries before cleanup
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:   0.8,
		TopK:        3,
		NoiseTokens: normalizers.DefaultNoiseTokens,
	}
}

// Engine scores queries against the reference set and ranks candidates.
// Scoring is O(n) in reference-set size per query, which is fine for lists
// up to tens of thousands of merchants.
type Engine struct {
	logger ectologger.Logger
	set    *reference.Set
	scorer *Scorer
	cfg    Config
}

// NewEngine creates a match engine. Out-of-range config is rejected here:
// a bad threshold must fail before any query is processed, never mid-batch.
func NewEngine(logger ectologger.Logger, set *reference.Set, cfg Config) (*Engine, error) {
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("match threshold must be in [0,1], got %v", cfg.Threshold)
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("top-K must be positive, got %d", cfg.TopK)
	}
	if set == nil {
		return nil, fmt.Errorf("reference set is required")
	}
	for _, name := range cfg.Normalizers {
		if _, ok := normalizers.Get(name); !ok {
			return nil, fmt.Errorf("unknown normalizer %q", name)
		}
	}

	return &Engine{
		logger: logger,
		set:    set,
		scorer: NewScorer(),
		cfg:    cfg,
	}, nil
}

// Match resolves one query against the reference set.
//
// The query is normalized once, scored against every entry in reference-list
// order, stable-sorted by descending score (so equal scores keep list order),
// and cut to the top K. The decision is accepted iff candidates exist and the
// best score clears the threshold.
//
// Never fails: empty or malformed queries and an empty reference set all
// degrade to the not-found result.
func (e *Engine) Match(ctx context.Context, query string) *models.MatchResult {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.Match")
	defer span.End()

	prepared := normalizers.ApplyChain(query, e.cfg.Normalizers...)
	normalized := normalizers.CleanWithNoise(prepared, e.cfg.NoiseTokens)
	if normalized == "" || e.set.Len() == 0 {
		result := models.NotFoundResult(query, normalized)
		e.logger.WithContext(ctx).WithFields(map[string]any{
			"query": query,
		}).Debug("Nothing to match against")
		return result
	}

	entries := e.set.Entries()
	candidates := make([]models.MatchCandidate, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		score := e.scorer.Score(normalized, entry.Key, entry.Merchant.DomainValue())
		candidates = append(candidates, models.MatchCandidate{
			Merchant: &entry.Merchant,
			Score:    score,
		})
	}

	// Stable sort preserves reference-list order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > e.cfg.TopK {
		candidates = candidates[:e.cfg.TopK]
	}

	result := &models.MatchResult{
		Query:           query,
		NormalizedQuery: normalized,
		Candidates:      candidates,
		BestMatch:       models.NotFound,
		Source:          models.MatchSourceNone,
	}

	if len(candidates) > 0 {
		result.BestScore = candidates[0].Score
		if candidates[0].Score >= e.cfg.Threshold {
			result.Accepted = true
			result.BestMatch = candidates[0].Merchant.Display()
			result.Source = models.MatchSourceReference
		}
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"query":      query,
		"normalized": normalized,
		"best_score": result.BestScore,
		"accepted":   result.Accepted,
	}).Debug("Matched query against reference set")

	return result
}

// Threshold returns the configured acceptance threshold.
func (e *Engine) Threshold() float64 {
	return e.cfg.Threshold
}
