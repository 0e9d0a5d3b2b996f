package domain

import "strings"

// PriceResult represents one price found for a product on an allow-listed
// platform. Results are immutable for the lifetime of a request.
type PriceResult struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Platform string `json:"platform"`
	Link     string `json:"link"`
}

// ShoppingItem represents a single shopping hit as returned by the Serper
// Google Shopping API. Only the fields this service reads are declared.
type ShoppingItem struct {
	Title       string  `json:"title"`
	Source      string  `json:"source"`
	Price       string  `json:"price"`
	Link        string  `json:"link"`
	Delivery    string  `json:"delivery,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
	Position    int     `json:"position,omitempty"`
}

// ShoppingSearchResponse represents the response from the Serper shopping
// search API.
type ShoppingSearchResponse struct {
	Shopping []ShoppingItem `json:"shopping"`
}

// Platform is one retailer this service is permitted to report prices for.
// A shopping hit belongs to the platform when its merchant label contains
// any of the aliases, compared case-insensitively. The upstream labels vary
// ("Amazon.in", "AMAZON", "Swiggy Instamart - Groceries"), so substring
// matching on a short alias list is used instead of exact comparison.
type Platform struct {
	Name    string
	aliases []string
}

// AllowedPlatforms is the fixed allow-list of quick-commerce and e-commerce
// retailers. Results from any other merchant are discarded.
var AllowedPlatforms = []Platform{
	{Name: "Amazon", aliases: []string{"amazon"}},
	{Name: "Blinkit", aliases: []string{"blinkit"}},
	{Name: "Zepto", aliases: []string{"zepto"}},
	{Name: "Swiggy Instamart", aliases: []string{"swiggy", "instamart"}},
}

// MatchPlatform reports the canonical platform name for a merchant label, or
// false when the merchant is not allow-listed.
func MatchPlatform(source string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(source))
	if normalized == "" {
		return "", false
	}

	for _, platform := range AllowedPlatforms {
		for _, alias := range platform.aliases {
			if strings.Contains(normalized, alias) {
				return platform.Name, true
			}
		}
	}
	return "", false
}
