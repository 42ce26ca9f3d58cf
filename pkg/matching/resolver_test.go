package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lakshmi0706/Mogrds/pkg/domains"
	"github.com/Lakshmi0706/Mogrds/pkg/models"
	"github.com/Lakshmi0706/Mogrds/pkg/search"
)

type fakeProvider struct {
	results []models.SearchResult
	err     error
	calls   int
}

func (f *fakeProvider) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func searchResults(urls ...string) []models.SearchResult {
	results := make([]models.SearchResult, len(urls))
	for i, u := range urls {
		results[i] = models.SearchResult{URL: u}
	}
	return results
}

func testResolver(t *testing.T, provider search.Provider, refNames ...string) *Resolver {
	t.Helper()
	engine := testEngine(t, DefaultConfig(), refNames...)

	var client *search.Client
	if provider != nil {
		client = search.NewClient(testLogger(), provider, nil, 0, 10)
	}
	return NewResolver(testLogger(), engine, client, domains.NewAnalyzer())
}

func TestResolveAcceptedMatchSkipsSearch(t *testing.T) {
	provider := &fakeProvider{results: searchResults("https://example.com")}
	resolver := testResolver(t, provider, "WALMART")

	result, err := resolver.Resolve(context.Background(), "WALMART #42")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, models.MatchSourceReference, result.Source)
	assert.Equal(t, 0, provider.calls, "search must not run when the reference match is accepted")
}

func TestResolveEscalatesToDominantDomain(t *testing.T) {
	provider := &fakeProvider{results: searchResults(
		"https://www.acmewidgets.com/about",
		"https://acmewidgets.com/products",
		"https://en.wikipedia.org/wiki/Acme",
		"https://somewhereelse.com",
	)}
	resolver := testResolver(t, provider, "WALMART")

	result, err := resolver.Resolve(context.Background(), "ACME WDGT CO")

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "acmewidgets.com", result.BestMatch)
	assert.Equal(t, models.MatchSourceSearch, result.Source)
	// wikipedia.org is deny-listed, so the share is 2 of 3 remaining hosts.
	assert.InDelta(t, 2.0/3.0, result.BestScore, 1e-9)
	assert.Equal(t, 1, provider.calls)
}

func TestResolveNoDominantDomain(t *testing.T) {
	provider := &fakeProvider{results: searchResults(
		"https://one.com",
		"https://two.com",
	)}
	resolver := testResolver(t, provider, "DOLLAR TREE")

	result, err := resolver.Resolve(context.Background(), "DULLAR REE")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, models.NotFound, result.BestMatch)
	// Fuzzy candidates survive the failed escalation for auditing.
	assert.NotEmpty(t, result.Candidates)
}

func TestResolveAllResultsDenied(t *testing.T) {
	provider := &fakeProvider{results: searchResults(
		"https://www.facebook.com/acme",
		"https://m.facebook.com/acme",
		"https://en.wikipedia.org/wiki/Acme",
	)}
	resolver := testResolver(t, provider, "WALMART")

	result, err := resolver.Resolve(context.Background(), "ACME")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, models.NotFound, result.BestMatch)
}

func TestResolveProviderFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	resolver := testResolver(t, provider, "WALMART")

	result, err := resolver.Resolve(context.Background(), "MYSTERY SHOP")

	require.NoError(t, err, "a search outage must not fail the query")
	assert.False(t, result.Accepted)
	assert.Equal(t, models.NotFound, result.BestMatch)
}

func TestResolveWithoutSearchClient(t *testing.T) {
	resolver := testResolver(t, nil, "WALMART")

	result, err := resolver.Resolve(context.Background(), "MYSTERY SHOP")

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, models.MatchSourceNone, result.Source)
}

func TestResolveCancelledContext(t *testing.T) {
	provider := &fakeProvider{results: searchResults("https://acme.com")}
	resolver := testResolver(t, provider, "WALMART")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, "MYSTERY SHOP")
	assert.ErrorIs(t, err, context.Canceled)
}
