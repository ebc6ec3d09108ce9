package usecase

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

func testEvent() *domain.AnalyticsEvent {
	return &domain.AnalyticsEvent{
		Type:        domain.EventRequest,
		UUID:        "92e998a7-e596-4747-a233-09108938c8d4",
		PlacementID: "5aa03a87be66ee000110c13b",
		CampaignID:  "5aabc20d62a17f0001bbcba4",
	}
}

func TestCreateTracker(t *testing.T) {
	d, codec, _ := newTestDelivery(newFakeStore(), Config{})
	event := testEvent()

	url, err := d.createTracker(domain.EventView, "http://www.foo.com", event)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^http://www\.foo\.com/e/[a-zA-Z0-9._-]+/view\.gif$`), url)

	require.Len(t, codec.signed, 1)
	assert.Equal(t, port.TokenClaims{
		UUID:        event.UUID,
		PlacementID: event.PlacementID,
		CampaignID:  event.CampaignID,
	}, codec.signed[0])
}

func TestCreateTrackersTrimsTrailingSlash(t *testing.T) {
	d, _, _ := newTestDelivery(newFakeStore(), Config{})

	trackers, err := d.createTrackers("http://www.foo.com/", testEvent())
	require.NoError(t, err)
	assert.Regexp(t, `^http://www\.foo\.com/e/.+/load\.gif$`, trackers.Load)
	assert.Regexp(t, `^http://www\.foo\.com/e/.+/view\.gif$`, trackers.View)
}

func TestCreateCampaignRedirect(t *testing.T) {
	d, codec, _ := newTestDelivery(newFakeStore(), Config{})
	event := testEvent()

	url, err := d.createCampaignRedirect("https://advertiser.example.com/landing", "http://foo.com", event)
	require.NoError(t, err)
	assert.Regexp(t, `^http://foo\.com/redir/.+$`, url)

	require.Len(t, codec.signed, 1)
	assert.Equal(t, "https://advertiser.example.com/landing", codec.signed[0].URL)
	assert.Equal(t, event.UUID, codec.signed[0].UUID)
}

func TestCreateFallbackRedirectPassesThrough(t *testing.T) {
	d, codec, _ := newTestDelivery(newFakeStore(), Config{})

	for _, raw := range []string{"", "/foo/path.jpg", "www.google.com"} {
		out, err := d.createFallbackRedirect(raw, "http://foo.com", testEvent())
		require.NoError(t, err)
		assert.Equal(t, raw, out, "value %q must pass through untouched", raw)
	}
	assert.Empty(t, codec.signed, "pass-through must not sign tokens")
}

func TestCreateFallbackRedirectWrapsAbsoluteURL(t *testing.T) {
	d, codec, _ := newTestDelivery(newFakeStore(), Config{})
	event := testEvent()

	out, err := d.createFallbackRedirect("http://www.redirect-to.com", "http://foo.com", event)
	require.NoError(t, err)
	assert.Regexp(t, `^http://foo\.com/redir/.+$`, out)

	require.Len(t, codec.signed, 1)
	assert.Equal(t, injectUTMParams("http://www.redirect-to.com", event), codec.signed[0].URL)
}

func TestCreateImgBeacon(t *testing.T) {
	expected := `<div data-fortnight-type="placement"><img data-fortnight-view="pending" data-fortnight-beacon="http://www.foo.com/e/abcd/view.gif" src="http://www.foo.com/e/abcd/load.gif"></div>`
	result := createImgBeacon(Trackers{
		Load: "http://www.foo.com/e/abcd/load.gif",
		View: "http://www.foo.com/e/abcd/view.gif",
	})
	assert.Equal(t, expected, result)
}

func TestTrackEvent(t *testing.T) {
	store := newFakeStore()
	d, _, _ := newTestDelivery(store, Config{})
	event := testEvent()

	_, err := d.createTracker(domain.EventView, "http://www.foo.com", event)
	require.NoError(t, err)

	err = d.TrackEvent(context.Background(), domain.EventView, "tok-1", "Mozilla/5.0", "198.51.100.4")
	require.NoError(t, err)

	views := store.eventsOfType(domain.EventView)
	require.Len(t, views, 1)
	assert.Equal(t, event.UUID, views[0].UUID)
	assert.Equal(t, event.PlacementID, views[0].PlacementID)
	assert.Equal(t, event.CampaignID, views[0].CampaignID)
	assert.Equal(t, "198.51.100.4", views[0].IP)
}

func TestTrackEventRejectsUnknownType(t *testing.T) {
	d, _, _ := newTestDelivery(newFakeStore(), Config{})
	err := d.TrackEvent(context.Background(), "click", "tok-1", "", "")
	assert.ErrorIs(t, err, port.ErrInvalidRequest)
}

func TestTrackEventRejectsInvalidToken(t *testing.T) {
	store := newFakeStore()
	d, codec, _ := newTestDelivery(store, Config{})
	codec.verifyErr = port.ErrInvalidToken

	err := d.TrackEvent(context.Background(), domain.EventLoad, "garbage", "", "")
	assert.ErrorIs(t, err, port.ErrInvalidToken)
	assert.Empty(t, store.events)
}

func TestRedirect(t *testing.T) {
	store := newFakeStore()
	d, _, _ := newTestDelivery(store, Config{})
	event := testEvent()

	_, err := d.createCampaignRedirect("https://advertiser.example.com/landing", "http://foo.com", event)
	require.NoError(t, err)

	destination, err := d.Redirect(context.Background(), "tok-1", "Mozilla/5.0", "198.51.100.4")
	require.NoError(t, err)
	assert.Equal(t, "https://advertiser.example.com/landing", destination)

	clicks := store.eventsOfType(domain.EventClick)
	require.Len(t, clicks, 1)
	assert.Equal(t, event.UUID, clicks[0].UUID)
}

func TestRedirectWithoutDestination(t *testing.T) {
	store := newFakeStore()
	d, _, _ := newTestDelivery(store, Config{})

	// A beacon token carries no destination URL.
	_, err := d.createTracker(domain.EventLoad, "http://foo.com", testEvent())
	require.NoError(t, err)

	_, err = d.Redirect(context.Background(), "tok-1", "", "")
	assert.ErrorIs(t, err, port.ErrInvalidRequest)
	assert.Empty(t, store.eventsOfType(domain.EventClick))
}
