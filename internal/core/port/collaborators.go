package port

import "fortnight-ads/internal/core/domain"

// TokenClaims are the event-identifying claims embedded in tracking and
// redirect URLs. URL is only set on redirect tokens. Tokens carry no
// issued-at or expiry claim and stay valid until secret rotation.
type TokenClaims struct {
	UUID        string
	PlacementID string
	CampaignID  string
	URL         string
}

// TokenCodec produces and consumes compact signed tokens.
type TokenCodec interface {
	Sign(claims TokenClaims) (string, error)
	// Verify returns the claims of a valid token, or ErrInvalidToken.
	Verify(token string) (TokenClaims, error)
}

// Renderer renders an HTML template source with the given variables.
type Renderer interface {
	Render(source string, vars map[string]any) (string, error)
}

// BotDetector classifies a user agent string.
type BotDetector interface {
	Detect(userAgent string) domain.BotClassification
}
