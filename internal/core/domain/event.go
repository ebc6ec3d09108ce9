package domain

import "time"

// Analytics event types recorded by the delivery engine.
const (
	EventRequest = "request"
	EventLoad    = "load"
	EventView    = "view"
	EventClick   = "click"
)

// BotClassification is the result of classifying a user agent string.
// Value names the matched crawler when Detected is true.
type BotClassification struct {
	Detected bool
	Value    string
}

// AnalyticsEvent is an append-only record of a delivery-related event.
// Exactly one event of type "request" is created per delivered ad; later
// load/view/click events reuse the same UUID for correlation. CampaignID
// is empty for fallback ads. Events are immutable once created.
type AnalyticsEvent struct {
	Type        string
	UUID        string
	CampaignID  string
	PlacementID string
	Date        time.Time
	Bot         BotClassification
	UserAgent   string
	KV          map[string]string
	IP          string
}
