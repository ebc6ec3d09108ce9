package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"fortnight-ads/internal/core/domain"
)

// utmSource attributes fallback redirect traffic to the product.
const utmSource = "fortnight"

// injectUTMParams appends UTM attribution parameters to a destination
// URL, preserving any pre-existing query parameters and their order. A
// URL without a path gains a trailing slash. The injection is not
// idempotent: repeated calls append duplicate utm_* parameters.
func injectUTMParams(rawURL string, event *domain.AnalyticsEvent) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if parsed.Path == "" {
		parsed.Path = "/"
	}

	utm := fmt.Sprintf("utm_source=%s&utm_medium=fallback&utm_campaign=%s&utm_content=%s",
		utmSource, url.QueryEscape(event.PlacementID), url.QueryEscape(event.UUID))

	// RawQuery is spliced by hand: url.Values re-encodes in sorted key
	// order, which would reorder the caller's parameters.
	if parsed.RawQuery == "" {
		parsed.RawQuery = utm
	} else {
		parsed.RawQuery = parsed.RawQuery + "&" + utm
	}
	return parsed.String()
}

// trimOrigin normalizes a request URL for concatenation into tracker
// paths.
func trimOrigin(requestURL string) string {
	return strings.TrimSuffix(requestURL, "/")
}
