package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 100.0, Percent(1.0))
	assert.Equal(t, 0.0, Percent(0.0))
	assert.Equal(t, 92.31, Percent(0.923077))
	assert.Equal(t, 86.67, Percent(0.866666))
}

func TestRecord(t *testing.T) {
	walmart := Merchant{Name: "WALMART"}
	target := Merchant{Name: "TARGET"}

	t.Run("renders top matches", func(t *testing.T) {
		result := &MatchResult{
			Query:     "WAL MART SUPERCENTER",
			Accepted:  true,
			BestMatch: "WALMART",
			BestScore: 0.8667,
			Source:    MatchSourceReference,
			Candidates: []MatchCandidate{
				{Merchant: &walmart, Score: 0.8667},
				{Merchant: &target, Score: 0.31},
			},
		}

		record := result.Record()
		assert.Equal(t, "WALMART", record.BestMatch)
		assert.Equal(t, 86.67, record.Confidence)
		assert.True(t, record.Accepted)
		assert.Equal(t, "WALMART (86.67%); TARGET (31.00%)", record.TopMatches)
	})

	t.Run("not found", func(t *testing.T) {
		record := NotFoundResult("GIBBERISH", "GIBBERISH").Record()
		assert.Equal(t, NotFound, record.BestMatch)
		assert.False(t, record.Accepted)
		assert.Equal(t, 0.0, record.Confidence)
		assert.Empty(t, record.TopMatches)
		assert.Equal(t, MatchSourceNone, record.Source)
	})

	t.Run("display name used in rendering", func(t *testing.T) {
		display := "Walmart Inc."
		m := Merchant{Name: "WALMART", DisplayName: &display}
		result := &MatchResult{
			Candidates: []MatchCandidate{{Merchant: &m, Score: 1.0}},
			BestMatch:  "Walmart Inc.",
			Accepted:   true,
		}
		assert.Equal(t, "Walmart Inc. (100.00%)", result.Record().TopMatches)
	})
}
