package models

import (
	"fmt"
	"math"
	"strings"
)

// NotFound is the sentinel reported when no candidate clears the threshold.
const NotFound = "Not Found"

// MatchSource identifies which stage of the escalation policy produced a decision
type MatchSource string

const (
	MatchSourceReference MatchSource = "reference" // matched against the reference set
	MatchSourceSearch    MatchSource = "search"    // matched via search-provider escalation
	MatchSourceNone      MatchSource = "none"      // nothing cleared the threshold
)

// MatchCandidate pairs a reference merchant with its similarity score for one query.
type MatchCandidate struct {
	Merchant *Merchant `json:"merchant"`
	Score    float64   `json:"score"`
}

// MatchResult is the outcome of ranking all candidates for one query.
// Candidates are sorted by descending score; ties keep reference-list order.
type MatchResult struct {
	Query           string           `json:"query"`
	NormalizedQuery string           `json:"normalized_query"`
	Candidates      []MatchCandidate `json:"candidates"`
	Accepted        bool             `json:"accepted"`
	BestMatch       string           `json:"best_match"`
	BestScore       float64          `json:"best_score"`
	Source          MatchSource      `json:"source"`
}

// NotFoundResult builds the canonical "nothing matched" result for a query.
func NotFoundResult(query, normalized string) *MatchResult {
	return &MatchResult{
		Query:           query,
		NormalizedQuery: normalized,
		Candidates:      []MatchCandidate{},
		Accepted:        false,
		BestMatch:       NotFound,
		BestScore:       0,
		Source:          MatchSourceNone,
	}
}

// ResultRecord is the flat per-query output record handed to result sinks.
// Confidence is a 0-100 percent rounded to two decimals.
type ResultRecord struct {
	Query      string      `json:"query"`
	BestMatch  string      `json:"best_match"`
	Confidence float64     `json:"confidence"`
	Accepted   bool        `json:"accepted"`
	TopMatches string      `json:"top_matches"`
	Source     MatchSource `json:"source"`
}

// Record flattens a match result into its reportable form. The top-K list is
// rendered as "NAME (92.31%); NAME (87.00%)" for audit/display.
func (r *MatchResult) Record() ResultRecord {
	parts := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		parts = append(parts, fmt.Sprintf("%s (%.2f%%)", c.Merchant.Display(), Percent(c.Score)))
	}

	return ResultRecord{
		Query:      r.Query,
		BestMatch:  r.BestMatch,
		Confidence: Percent(r.BestScore),
		Accepted:   r.Accepted,
		TopMatches: strings.Join(parts, "; "),
		Source:     r.Source,
	}
}

// Percent converts a [0,1] score to a percent rounded to two decimals.
func Percent(score float64) float64 {
	return math.Round(score*10000) / 100
}
