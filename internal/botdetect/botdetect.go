// Package botdetect classifies requesting user agents against a table of
// known crawler signatures. The classification is recorded on every
// analytics event so read-side consumers can discount non-human traffic.
package botdetect

import (
	"strings"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// signatures maps a case-insensitive user agent fragment to the crawler
// name reported in the classification. Order matters: specific crawlers
// come before the generic catch-alls.
var signatures = []struct {
	fragment string
	value    string
}{
	{"googlebot", "googlebot"},
	{"bingbot", "bingbot"},
	{"yandexbot", "yandexbot"},
	{"duckduckbot", "duckduckbot"},
	{"baiduspider", "baiduspider"},
	{"slurp", "slurp"},
	{"facebookexternalhit", "facebookexternalhit"},
	{"twitterbot", "twitterbot"},
	{"applebot", "applebot"},
	{"semrushbot", "semrushbot"},
	{"ahrefsbot", "ahrefsbot"},
	{"mj12bot", "mj12bot"},
	{"phantomjs", "phantomjs"},
	{"headlesschrome", "headlesschrome"},
	{"crawler", "crawler"},
	{"spider", "spider"},
	{"curl/", "curl"},
	{"wget/", "wget"},
	{"bot", "bot"},
}

// Detector implements port.BotDetector.
type Detector struct{}

// New creates a detector.
func New() *Detector {
	return &Detector{}
}

// Detect classifies a user agent string. An empty user agent is not
// treated as a bot; the delivery path records it verbatim either way.
func (Detector) Detect(userAgent string) domain.BotClassification {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return domain.BotClassification{}
	}
	for _, sig := range signatures {
		if strings.Contains(ua, sig.fragment) {
			return domain.BotClassification{Detected: true, Value: sig.value}
		}
	}
	return domain.BotClassification{}
}

var _ port.BotDetector = (*Detector)(nil)
