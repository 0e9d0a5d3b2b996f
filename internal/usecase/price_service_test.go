package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSearchClient is a ShoppingSearchClient that returns canned data and
// counts how often it was called.
type stubSearchClient struct {
	response *domain.ShoppingSearchResponse
	err      error
	calls    int
}

func (s *stubSearchClient) Search(ctx context.Context, query string) (*domain.ShoppingSearchResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func mixedResponse() *domain.ShoppingSearchResponse {
	return &domain.ShoppingSearchResponse{
		Shopping: []domain.ShoppingItem{
			{Title: "Amul Taaza Milk 500ml", Source: "Amazon", Price: "₹33", Link: "https://amazon.in/p/1"},
			{Title: "Amul Taaza Milk 500ml", Source: "Flipkart", Price: "₹30", Link: "https://flipkart.com/p/2"},
			{Title: "Amul Taaza Milk 500ml", Source: "Zepto", Price: "₹31", Link: "https://zepto.com/p/3"},
		},
	}
}

func TestLookupFiltersByAllowList(t *testing.T) {
	stub := &stubSearchClient{response: mixedResponse()}
	svc := NewPriceService(stub, metrics.New())

	results, err := svc.Lookup(context.Background(), "amul milk 500ml")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, stub.calls)

	// Flipkart is dropped; Amazon and Zepto keep their upstream order.
	assert.Equal(t, "Amazon", results[0].Platform)
	assert.Equal(t, "₹33", results[0].Price)
	assert.Equal(t, "Zepto", results[1].Platform)
	assert.Equal(t, "https://zepto.com/p/3", results[1].Link)
}

func TestLookupCaseInsensitiveMerchants(t *testing.T) {
	stub := &stubSearchClient{response: &domain.ShoppingSearchResponse{
		Shopping: []domain.ShoppingItem{
			{Title: "Echo Dot", Source: "AMAZON.IN", Price: "₹4,499", Link: "https://amazon.in/p/9"},
		},
	}}
	svc := NewPriceService(stub, metrics.New())

	results, err := svc.Lookup(context.Background(), "echo dot")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Amazon", results[0].Platform)
}

func TestLookupNoMatchingSource(t *testing.T) {
	stub := &stubSearchClient{response: &domain.ShoppingSearchResponse{
		Shopping: []domain.ShoppingItem{
			{Title: "Shoes", Source: "Myntra", Price: "₹2,199", Link: "https://myntra.com/p/1"},
			{Title: "Shoes", Source: "Flipkart", Price: "₹2,099", Link: "https://flipkart.com/p/2"},
		},
	}}
	svc := NewPriceService(stub, metrics.New())

	results, err := svc.Lookup(context.Background(), "running shoes")

	assert.Nil(t, results)
	assert.ErrorIs(t, err, domain.ErrNoMatchingSource)
}

func TestLookupUpstreamFailure(t *testing.T) {
	stub := &stubSearchClient{err: errors.New("connection refused")}
	svc := NewPriceService(stub, metrics.New())

	results, err := svc.Lookup(context.Background(), "amul milk")

	assert.Nil(t, results)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestLookupEmptyQuery(t *testing.T) {
	stub := &stubSearchClient{response: mixedResponse()}
	svc := NewPriceService(stub, metrics.New())

	_, err := svc.Lookup(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, 0, stub.calls, "empty query must not reach the upstream")
}

func TestLookupUpstreamOutcomeLabels(t *testing.T) {
	t.Run("upstream failure counts as error", func(t *testing.T) {
		m := metrics.New()
		stub := &stubSearchClient{err: fmt.Errorf("%w: status 500", domain.ErrUpstreamFailure)}
		svc := NewPriceService(stub, m)

		_, err := svc.Lookup(context.Background(), "amul milk")

		require.ErrorIs(t, err, domain.ErrUpstreamFailure)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("error")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("aborted")))
	})

	t.Run("pre-request failure counts as aborted", func(t *testing.T) {
		m := metrics.New()
		stub := &stubSearchClient{err: fmt.Errorf("rate limiter error: %w", context.Canceled)}
		svc := NewPriceService(stub, m)

		_, err := svc.Lookup(context.Background(), "amul milk")

		require.Error(t, err)
		assert.Equal(t, 0.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("error")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("aborted")))
	})
}

func TestComparePricesRendersResults(t *testing.T) {
	stub := &stubSearchClient{response: mixedResponse()}
	svc := NewPriceService(stub, metrics.New())

	text, err := svc.ComparePrices(context.Background(), "amul milk 500ml")

	require.NoError(t, err)
	assert.Contains(t, text, "Amul Taaza Milk 500ml")
	assert.Contains(t, text, "Platform: Amazon")
	assert.Contains(t, text, "Platform: Zepto")
	assert.Contains(t, text, "https://amazon.in/p/1")
	assert.NotContains(t, text, "Flipkart")

	// Upstream order survives rendering.
	assert.Less(t, strings.Index(text, "Platform: Amazon"), strings.Index(text, "Platform: Zepto"))
}

func TestComparePricesNotFoundLiteral(t *testing.T) {
	stub := &stubSearchClient{response: &domain.ShoppingSearchResponse{
		Shopping: []domain.ShoppingItem{
			{Title: "Shoes", Source: "Myntra", Price: "₹2,199", Link: "https://myntra.com/p/1"},
		},
	}}
	svc := NewPriceService(stub, metrics.New())

	text, err := svc.ComparePrices(context.Background(), "running shoes")

	require.NoError(t, err)
	assert.Equal(t, "We couldn't find the requested product on online quick commerce sites.", text)
}

func TestComparePricesEmptyUpstreamList(t *testing.T) {
	stub := &stubSearchClient{response: &domain.ShoppingSearchResponse{}}
	svc := NewPriceService(stub, metrics.New())

	text, err := svc.ComparePrices(context.Background(), "obscure product")

	require.NoError(t, err)
	assert.Equal(t, NotFoundMessage, text)
}

func TestComparePricesPropagatesUpstreamFailure(t *testing.T) {
	stub := &stubSearchClient{err: domain.ErrUpstreamFailure}
	svc := NewPriceService(stub, metrics.New())

	text, err := svc.ComparePrices(context.Background(), "amul milk")

	assert.Empty(t, text)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
