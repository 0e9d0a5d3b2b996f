package domain

import "context"

// ShoppingSearchClient defines the interface for the upstream shopping
// search provider. Tests substitute a stub to avoid network access.
type ShoppingSearchClient interface {
	Search(ctx context.Context, query string) (*ShoppingSearchResponse, error)
}
