package domain

// Ad is the transient response artifact of one delivery. Fallback is
// true iff no real creative was used, in which case CreativeID is nil.
// Ads are never persisted.
type Ad struct {
	CampaignID *string `json:"campaignId"`
	CreativeID *string `json:"creativeId"`
	Fallback   bool    `json:"fallback"`
	HTML       string  `json:"html"`
}
