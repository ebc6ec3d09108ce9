package port

import (
	"context"
	"errors"

	"fortnight-ads/internal/core/domain"
)

var (
	// ErrNotFound indicates the placement or template id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest indicates a malformed delivery request, such as a
	// num outside 1..10 or a missing request URL.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotImplemented is returned when more than one ad is requested.
	// Serving multiple ads per call is a recognized future capability.
	ErrNotImplemented = errors.New("not implemented")
	// ErrInvalidToken indicates a tracking token failed verification.
	ErrInvalidToken = errors.New("invalid token")
)

// RequestVars carries the targeting and merge variables of one delivery
// request. Custom values are normalized into key/value targeting pairs;
// Fallback values are merged into the fallback template render.
type RequestVars struct {
	Custom   map[string]any
	Fallback map[string]any
}

// AdRequest is the inbound contract of the delivery engine.
type AdRequest struct {
	PlacementID string
	UserAgent   string
	IP          string
	// RequestURL is the origin the tracking and redirect URLs are built
	// against, e.g. "https://serve.example.com".
	RequestURL string
	// Num is the number of ads requested. Values below one are served as
	// one; values above ten are rejected.
	Num  int
	Vars RequestVars
}

// DeliveryUseCase is the primary port into the ad delivery engine.
type DeliveryUseCase interface {
	// FindFor selects and renders ads for a placement. It returns one Ad
	// per (possibly padded) campaign candidate and records one "request"
	// analytics event per ad.
	FindFor(ctx context.Context, req AdRequest) ([]domain.Ad, error)
	// TrackEvent verifies a beacon token and appends a load or view event.
	TrackEvent(ctx context.Context, eventType, token, userAgent, ip string) error
	// Redirect verifies a redirect token, appends a click event and
	// returns the destination URL to redirect to.
	Redirect(ctx context.Context, token, userAgent, ip string) (string, error)
}
