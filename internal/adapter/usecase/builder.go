package usecase

import (
	"context"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// buildAdFor renders one ad for a candidate campaign. Placeholder
// campaigns and campaigns without a usable creative degrade to the
// fallback path; degradation is never an error.
func (d *Delivery) buildAdFor(ctx context.Context, campaign domain.Campaign, template *domain.Template, fallbackVars map[string]any, requestURL string, event *domain.AnalyticsEvent) (domain.Ad, error) {
	if campaign.ID == "" {
		return d.buildFallbackFor(template, fallbackVars, requestURL, event)
	}
	creative, err := d.getCreativeFor(ctx, campaign)
	if err != nil {
		return domain.Ad{}, err
	}
	if creative == nil || !creative.Active {
		// No usable creative. Send fallback.
		return d.buildFallbackFor(template, fallbackVars, requestURL, event)
	}

	ad := createEmptyAd(campaign.ID)

	href, err := d.createCampaignRedirect(campaign.URL, requestURL, event)
	if err != nil {
		return domain.Ad{}, err
	}
	trackers, err := d.createTrackers(requestURL, event)
	if err != nil {
		return domain.Ad{}, err
	}

	vars := map[string]any{
		"uuid":     event.UUID,
		"pid":      event.PlacementID,
		"kv":       event.KV,
		"href":     href,
		"campaign": campaignVars(campaign),
		"creative": creativeVars(creative),
		"beacon":   createImgBeacon(trackers),
	}
	html, err := d.renderer.Render(template.HTML, vars)
	if err != nil {
		return domain.Ad{}, err
	}
	ad.HTML = html
	ad.CreativeID = &creative.ID
	ad.Fallback = false
	return ad, nil
}

// getCreativeFor rotates a campaign's creatives uniformly at random.
// Eventually this could use some sort of weighting criteria. Returns nil
// when the campaign has no creatives.
func (d *Delivery) getCreativeFor(ctx context.Context, campaign domain.Campaign) (*domain.Creative, error) {
	count := len(campaign.Creatives)
	if count == 0 {
		return nil, nil
	}
	creative := campaign.Creatives[d.rng.Intn(count)]

	// Append the creative's image.
	if creative.ImageID != "" {
		image, err := d.store.FindImage(ctx, creative.ImageID)
		if err != nil {
			return nil, err
		}
		creative.Image = image
	}
	return &creative, nil
}

// buildFallbackFor builds a fallback ad from the template's fallback
// source, or from the built-in minimal source when the template carries
// none. The returned ad keeps the campaign id carried by the event.
func (d *Delivery) buildFallbackFor(template *domain.Template, fallbackVars map[string]any, requestURL string, event *domain.AnalyticsEvent) (domain.Ad, error) {
	ad := createEmptyAd(event.CampaignID)

	trackers, err := d.createTrackers(requestURL, event)
	if err != nil {
		return domain.Ad{}, err
	}
	vars := map[string]any{
		"pid":    event.PlacementID,
		"uuid":   event.UUID,
		"kv":     event.KV,
		"beacon": createImgBeacon(trackers),
	}

	source := fallbackFallback
	if template.Fallback != "" {
		source = template.Fallback
		for key, value := range fallbackVars {
			if _, reserved := vars[key]; reserved {
				continue
			}
			if key == "url" {
				if raw, ok := value.(string); ok {
					redirect, err := d.createFallbackRedirect(raw, requestURL, event)
					if err != nil {
						return domain.Ad{}, err
					}
					vars[key] = redirect
					continue
				}
			}
			vars[key] = value
		}
	}

	html, err := d.renderer.Render(source, vars)
	if err != nil {
		return domain.Ad{}, err
	}
	ad.HTML = html
	return ad, nil
}

func campaignVars(c domain.Campaign) map[string]any {
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
		"url":  c.URL,
	}
}

func creativeVars(c *domain.Creative) map[string]any {
	vars := map[string]any{
		"id":     c.ID,
		"title":  c.Title,
		"teaser": c.Teaser,
	}
	if c.Image != nil {
		vars["image"] = map[string]any{
			"id":  c.Image.ID,
			"src": c.Image.Src,
		}
	}
	return vars
}

// fallbackFallback is the zero-configuration fallback source: it renders
// nothing but the tracking beacon so a response never crashes.
const fallbackFallback = "{{ beacon }}"

var _ port.DeliveryUseCase = (*Delivery)(nil)
