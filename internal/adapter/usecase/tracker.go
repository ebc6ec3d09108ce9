package usecase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// Trackers holds the beacon URLs of one delivered ad.
type Trackers struct {
	Load string
	View string
}

// createTracker builds a signed beacon URL of the form
// {origin}/e/{token}/{type}.gif.
func (d *Delivery) createTracker(eventType, requestURL string, event *domain.AnalyticsEvent) (string, error) {
	token, err := d.tokens.Sign(port.TokenClaims{
		UUID:        event.UUID,
		PlacementID: event.PlacementID,
		CampaignID:  event.CampaignID,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/e/%s/%s.gif", trimOrigin(requestURL), token, eventType), nil
}

// createTrackers builds the load and view beacon URLs for one ad.
func (d *Delivery) createTrackers(requestURL string, event *domain.AnalyticsEvent) (Trackers, error) {
	load, err := d.createTracker(domain.EventLoad, requestURL, event)
	if err != nil {
		return Trackers{}, err
	}
	view, err := d.createTracker(domain.EventView, requestURL, event)
	if err != nil {
		return Trackers{}, err
	}
	return Trackers{Load: load, View: view}, nil
}

// createCampaignRedirect builds the signed click-redirect URL for a
// campaign destination. The destination travels inside the token.
func (d *Delivery) createCampaignRedirect(destination, requestURL string, event *domain.AnalyticsEvent) (string, error) {
	token, err := d.tokens.Sign(port.TokenClaims{
		UUID:        event.UUID,
		PlacementID: event.PlacementID,
		CampaignID:  event.CampaignID,
		URL:         destination,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/redir/%s", trimOrigin(requestURL), token), nil
}

// createFallbackRedirect wraps a fallback destination in a signed
// redirect with UTM attribution. Empty or non-absolute URLs are passed
// back as-is; a missing destination is never an error.
func (d *Delivery) createFallbackRedirect(rawURL, requestURL string, event *domain.AnalyticsEvent) (string, error) {
	if rawURL == "" {
		return rawURL, nil
	}
	if parsed, err := url.Parse(rawURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return rawURL, nil
	}
	return d.createCampaignRedirect(injectUTMParams(rawURL, event), requestURL, event)
}

// createImgBeacon emits the tracking pixel markup for one ad. Consumers
// parse these attributes verbatim, so the shape must not change.
func createImgBeacon(trackers Trackers) string {
	return fmt.Sprintf(`<div data-fortnight-type="placement"><img data-fortnight-view="pending" data-fortnight-beacon="%s" src="%s"></div>`, trackers.View, trackers.Load)
}

// TrackEvent verifies a beacon token and appends the matching analytics
// event. Only load and view beacons are accepted.
func (d *Delivery) TrackEvent(ctx context.Context, eventType, token, userAgent, ip string) error {
	if eventType != domain.EventLoad && eventType != domain.EventView {
		return fmt.Errorf("%w: unsupported event type '%s'", port.ErrInvalidRequest, eventType)
	}
	claims, err := d.tokens.Verify(token)
	if err != nil {
		return err
	}
	return d.store.CreateEvent(ctx, d.eventFromClaims(eventType, claims, userAgent, ip))
}

// Redirect verifies a redirect token, appends a click event and returns
// the destination to redirect to.
func (d *Delivery) Redirect(ctx context.Context, token, userAgent, ip string) (string, error) {
	claims, err := d.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	if claims.URL == "" {
		return "", fmt.Errorf("%w: token carries no destination URL", port.ErrInvalidRequest)
	}
	if err = d.store.CreateEvent(ctx, d.eventFromClaims(domain.EventClick, claims, userAgent, ip)); err != nil {
		return "", err
	}
	return claims.URL, nil
}

func (d *Delivery) eventFromClaims(eventType string, claims port.TokenClaims, userAgent, ip string) *domain.AnalyticsEvent {
	return &domain.AnalyticsEvent{
		Type:        eventType,
		UUID:        claims.UUID,
		CampaignID:  claims.CampaignID,
		PlacementID: claims.PlacementID,
		Date:        time.Now(),
		Bot:         d.bots.Detect(userAgent),
		UserAgent:   userAgent,
		IP:          ip,
	}
}
