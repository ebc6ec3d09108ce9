package domain

import "time"

// Creative represents one rendering variant belonging to a campaign.
// Creatives are rotated uniformly at random per request.
type Creative struct {
	ID         string
	CampaignID string
	Title      string
	Teaser     string
	Active     bool
	ImageID    string
	// Image is attached by the selector when ImageID resolves. It is
	// never persisted on the creative itself.
	Image     *Image
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Image is a stored asset referenced by a creative. Src is the public,
// renderable URL derived from the file path at read time.
type Image struct {
	ID       string
	FilePath string
	Src      string
}
