package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lakshmi0706/Mogrds/pkg/models"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

type stubProvider struct {
	results []models.SearchResult
	err     error
	gotMax  int
}

func (s *stubProvider) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.gotMax = maxResults
	return s.results, s.err
}

func TestClientSearch(t *testing.T) {
	t.Run("returns provider results", func(t *testing.T) {
		provider := &stubProvider{results: []models.SearchResult{{URL: "https://acme.com"}}}
		client := NewClient(testLogger(), provider, nil, 0, 5)

		results, err := client.Search(context.Background(), "acme")
		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 5, provider.gotMax)
	})

	t.Run("provider errors degrade to empty results", func(t *testing.T) {
		provider := &stubProvider{err: errors.New("quota exceeded")}
		client := NewClient(testLogger(), provider, nil, 0, 5)

		results, err := client.Search(context.Background(), "acme")
		assert.NoError(t, err)
		assert.Nil(t, results)
	})

	t.Run("over-long result lists are truncated", func(t *testing.T) {
		provider := &stubProvider{results: []models.SearchResult{
			{URL: "https://a.com"}, {URL: "https://b.com"}, {URL: "https://c.com"},
		}}
		client := NewClient(testLogger(), provider, nil, 0, 2)

		results, err := client.Search(context.Background(), "acme")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("cancelled context is returned", func(t *testing.T) {
		provider := &stubProvider{results: []models.SearchResult{{URL: "https://a.com"}}}
		client := NewClient(testLogger(), provider, FixedDelay{Duration: time.Millisecond}, 0, 5)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Search(ctx, "acme")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDelays(t *testing.T) {
	t.Run("fixed delay waits", func(t *testing.T) {
		start := time.Now()
		err := FixedDelay{Duration: 10 * time.Millisecond}.Wait(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("zero delay is immediate", func(t *testing.T) {
		err := FixedDelay{}.Wait(context.Background())
		assert.NoError(t, err)
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		delay := JitterDelay{Min: time.Millisecond, Max: 5 * time.Millisecond}
		for i := 0; i < 5; i++ {
			start := time.Now()
			err := delay.Wait(context.Background())
			require.NoError(t, err)
			elapsed := time.Since(start)
			assert.GreaterOrEqual(t, elapsed, time.Millisecond)
		}
	})

	t.Run("cancellation interrupts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := FixedDelay{Duration: time.Minute}.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
