package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// Config holds the delivery policies that are not request-scoped.
type Config struct {
	// DefaultReservePct is the account-wide reserve percentage (0-100)
	// applied when a placement carries none.
	DefaultReservePct int
	// MatchKeyValues enables key/value targeting in the campaign query.
	// Disabled by default; normalization of request pairs still occurs.
	MatchKeyValues bool
}

// Delivery implements port.DeliveryUseCase. It composes the campaign
// query engine, creative rotation, fallback rendering and tracker
// construction. All collaborators are injected so each concern can be
// substituted under test.
type Delivery struct {
	store    port.DeliveryStore
	tokens   port.TokenCodec
	renderer port.Renderer
	bots     port.BotDetector
	cfg      Config
	rng      Rand
}

// NewDelivery creates the delivery engine with its collaborators.
func NewDelivery(store port.DeliveryStore, tokens port.TokenCodec, renderer port.Renderer, bots port.BotDetector, cfg Config) *Delivery {
	return &Delivery{
		store:    store,
		tokens:   tokens,
		renderer: renderer,
		bots:     bots,
		cfg:      cfg,
		rng:      newRand(),
	}
}

// FindFor selects and renders ads for a placement. See the port contract.
func (d *Delivery) FindFor(ctx context.Context, req port.AdRequest) ([]domain.Ad, error) {
	if req.RequestURL == "" {
		return nil, fmt.Errorf("%w: no request URL was provided", port.ErrInvalidRequest)
	}
	placement, template, err := d.getPlacementAndTemplate(ctx, req.PlacementID)
	if err != nil {
		return nil, err
	}

	limit, err := normalizeNum(req.Num)
	if err != nil {
		return nil, err
	}

	reservePct := float64(d.cfg.DefaultReservePct) / 100
	if placement.ReservePct != nil {
		reservePct = float64(*placement.ReservePct) / 100
	}

	keyValues := cleanValues(req.Vars.Custom)

	var campaigns []domain.Campaign
	if d.rng.Float64() >= reservePct {
		campaigns, err = d.queryCampaigns(ctx, time.Now(), placement.ID, keyValues, limit)
		if err != nil {
			return nil, err
		}
	}
	campaigns = fillWithFallbacks(campaigns, limit)

	ads := make([]domain.Ad, 0, len(campaigns))
	for _, campaign := range campaigns {
		event := d.createRequestEvent(campaign.ID, placement.ID, req.UserAgent, keyValues, req.IP)
		if err = d.store.CreateEvent(ctx, event); err != nil {
			return nil, err
		}
		ad, err := d.buildAdFor(ctx, campaign, template, req.Vars.Fallback, req.RequestURL, event)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

// getPlacementAndTemplate resolves the placement and its template.
func (d *Delivery) getPlacementAndTemplate(ctx context.Context, placementID string) (*domain.Placement, *domain.Template, error) {
	if placementID == "" {
		return nil, nil, fmt.Errorf("%w: no placement ID was provided", port.ErrInvalidRequest)
	}
	placement, err := d.store.FindPlacement(ctx, placementID)
	if err != nil {
		return nil, nil, err
	}
	if placement == nil {
		return nil, nil, fmt.Errorf("%w: no placement exists for ID '%s'", port.ErrNotFound, placementID)
	}
	template, err := d.store.FindTemplate(ctx, placement.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	if template == nil {
		return nil, nil, fmt.Errorf("%w: no template exists for ID '%s'", port.ErrNotFound, placement.TemplateID)
	}
	return placement, template, nil
}

// normalizeNum maps the requested ad count to the served limit. Values
// below one mean one; more than ten is rejected; more than one is a
// recognized but unimplemented capability.
func normalizeNum(num int) (int, error) {
	if num < 1 {
		return 1, nil
	}
	if num > 10 {
		return 0, fmt.Errorf("%w: you cannot return more than 10 ads in one request", port.ErrInvalidRequest)
	}
	if num > 1 {
		return 0, fmt.Errorf("%w: requesting more than one ad in a request is not yet implemented", port.ErrNotImplemented)
	}
	return num, nil
}

// queryCampaigns fetches the eligible campaigns and randomly selects up
// to limit of them.
func (d *Delivery) queryCampaigns(ctx context.Context, startDate time.Time, placementID string, keyValues map[string]string, limit int) ([]domain.Campaign, error) {
	campaigns, err := d.store.FindCampaigns(ctx, port.CampaignQuery{
		StartDate:      startDate,
		PlacementID:    placementID,
		KeyValues:      keyValues,
		MatchKeyValues: d.cfg.MatchKeyValues,
	})
	if err != nil {
		return nil, err
	}
	return d.selectCampaigns(campaigns, limit), nil
}

// selectCampaigns shuffles the campaigns and returns the first limit.
// No weighting by budget, priority or pacing: selection is uniform.
func (d *Delivery) selectCampaigns(campaigns []domain.Campaign, limit int) []domain.Campaign {
	d.rng.Shuffle(len(campaigns), func(i, j int) {
		campaigns[i], campaigns[j] = campaigns[j], campaigns[i]
	})
	if len(campaigns) > limit {
		campaigns = campaigns[:limit]
	}
	return campaigns
}

// fillWithFallbacks pads the candidate list with empty placeholder
// campaigns until its length equals limit.
func fillWithFallbacks(campaigns []domain.Campaign, limit int) []domain.Campaign {
	for len(campaigns) < limit {
		campaigns = append(campaigns, domain.Campaign{})
	}
	return campaigns
}

// createRequestEvent synthesizes the request-scoped analytics event for
// one ad. The generated UUID correlates later load/view/click events.
func (d *Delivery) createRequestEvent(campaignID, placementID, userAgent string, keyValues map[string]string, ip string) *domain.AnalyticsEvent {
	return &domain.AnalyticsEvent{
		Type:        domain.EventRequest,
		UUID:        uuid.NewString(),
		CampaignID:  campaignID,
		PlacementID: placementID,
		Date:        time.Now(),
		Bot:         d.bots.Detect(userAgent),
		UserAgent:   userAgent,
		KV:          keyValues,
		IP:          ip,
	}
}

// createEmptyAd returns the zero-state ad for a campaign id. Empty ids
// normalize to a nil campaign id.
func createEmptyAd(campaignID string) domain.Ad {
	ad := domain.Ad{
		CampaignID: nil,
		CreativeID: nil,
		Fallback:   true,
		HTML:       "",
	}
	if campaignID != "" {
		ad.CampaignID = &campaignID
	}
	return ad
}

// cleanValues normalizes raw targeting variables into string pairs.
// Pairs with an empty key or value are dropped, keys and values are
// trimmed and values stringified. Always runs, even while key/value
// filtering is policy-disabled.
func cleanValues(values map[string]any) map[string]string {
	cleaned := make(map[string]string, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" || value == nil {
			continue
		}
		var str string
		switch v := value.(type) {
		case string:
			str = strings.TrimSpace(v)
		case float64:
			str = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			str = strconv.Itoa(v)
		case bool:
			str = strconv.FormatBool(v)
		default:
			str = strings.TrimSpace(fmt.Sprintf("%v", v))
		}
		if str == "" {
			continue
		}
		cleaned[key] = str
	}
	return cleaned
}
