package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/metrics"
)

// NotFoundMessage is the exact text returned when the upstream search
// succeeded but no result came from an allow-listed platform.
const NotFoundMessage = "We couldn't find the requested product on online quick commerce sites."

// UpstreamFailureMessage is the generic text returned when the upstream
// search itself failed. Kept distinct from NotFoundMessage so callers can
// tell "nothing matched" from "could not look".
const UpstreamFailureMessage = "Could not fetch prices right now. Please try again later."

// PriceService resolves a product query to prices on allow-listed
// quick-commerce platforms. Each lookup is stateless: one upstream search,
// one filter pass, no retained context between calls.
type PriceService struct {
	search  domain.ShoppingSearchClient
	metrics *metrics.Metrics
}

// NewPriceService creates a new price service with dependencies
func NewPriceService(search domain.ShoppingSearchClient, m *metrics.Metrics) *PriceService {
	return &PriceService{
		search:  search,
		metrics: m,
	}
}

// Lookup issues one upstream search and returns the allow-listed results in
// upstream order. No deduplication, no re-ranking, no currency conversion.
// Returns domain.ErrNoMatchingSource when the filter empties the result set
// and domain.ErrUpstreamFailure (wrapped) when the search itself failed.
func (s *PriceService) Lookup(ctx context.Context, query string) ([]domain.PriceResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	resp, err := s.search.Search(ctx, query)
	if err != nil {
		// Failures before a request was issued (rate limiter, canceled
		// context) are not upstream errors; keep the outcomes apart.
		if errors.Is(err, domain.ErrUpstreamFailure) {
			s.metrics.IncUpstream("error")
			return nil, err
		}
		s.metrics.IncUpstream("aborted")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	s.metrics.IncUpstream("ok")

	results := filterAllowed(resp.Shopping)
	if len(results) == 0 {
		return nil, domain.ErrNoMatchingSource
	}
	return results, nil
}

// ComparePrices renders a lookup as the user-facing text handed back to the
// calling agent. An empty filtered set renders as NotFoundMessage with no
// error; all other failures propagate for the delivery layer to report.
func (s *PriceService) ComparePrices(ctx context.Context, query string) (string, error) {
	results, err := s.Lookup(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingSource) {
			return NotFoundMessage, nil
		}
		return "", err
	}
	return FormatResults(query, results), nil
}

// filterAllowed keeps only results whose merchant matches the platform
// allow-list, preserving upstream order. The reported platform name is the
// canonical one, not the raw merchant label.
func filterAllowed(items []domain.ShoppingItem) []domain.PriceResult {
	var results []domain.PriceResult
	for _, item := range items {
		platform, ok := domain.MatchPlatform(item.Source)
		if !ok {
			continue
		}
		results = append(results, domain.PriceResult{
			Title:    item.Title,
			Price:    item.Price,
			Platform: platform,
			Link:     item.Link,
		})
	}
	return results
}

// FormatResults renders surviving results as a short human-readable list in
// the order received from upstream.
func FormatResults(query string, results []domain.PriceResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d price(s) for %q:\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n   Price: %s\n   Platform: %s\n   Link: %s\n",
			i+1, r.Title, r.Price, r.Platform, r.Link)
	}
	return b.String()
}
