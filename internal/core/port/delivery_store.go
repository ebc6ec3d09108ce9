package port

import (
	"context"
	"time"

	"fortnight-ads/internal/core/domain"
)

// CampaignQuery carries the parameters of an eligibility query. KeyValues
// are the normalized request targeting pairs; MatchKeyValues toggles
// whether they participate in filtering (policy-disabled by default).
type CampaignQuery struct {
	StartDate      time.Time
	PlacementID    string
	KeyValues      map[string]string
	MatchKeyValues bool
}

// DeliveryStore defines the persistence layer for the delivery engine.
// It is an outbound port; implementations must be safe for concurrent
// use. Lookup methods return (nil, nil) when the entity does not exist.
type DeliveryStore interface {
	// FindCampaigns returns all campaigns eligible for the query, in no
	// particular order. An empty result is not an error.
	FindCampaigns(ctx context.Context, q CampaignQuery) ([]domain.Campaign, error)
	// FindPlacement returns a placement by id.
	FindPlacement(ctx context.Context, id string) (*domain.Placement, error)
	// FindTemplate returns a template by id.
	FindTemplate(ctx context.Context, id string) (*domain.Template, error)
	// FindImage returns an image by id with its renderable source resolved.
	FindImage(ctx context.Context, id string) (*domain.Image, error)
	// CreateEvent appends one analytics event. Re-delivery of an event
	// with the same uuid and type must not fail.
	CreateEvent(ctx context.Context, ev *domain.AnalyticsEvent) error
}
