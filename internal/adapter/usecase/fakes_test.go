package usecase

import (
	"context"
	"fmt"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// fakeStore is an in-memory DeliveryStore recording queries and events.
type fakeStore struct {
	placements map[string]*domain.Placement
	templates  map[string]*domain.Template
	images     map[string]*domain.Image
	campaigns  []domain.Campaign

	campaignErr   error
	campaignCalls int
	lastQuery     port.CampaignQuery
	events        []*domain.AnalyticsEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		placements: map[string]*domain.Placement{},
		templates:  map[string]*domain.Template{},
		images:     map[string]*domain.Image{},
	}
}

func (s *fakeStore) FindCampaigns(_ context.Context, q port.CampaignQuery) ([]domain.Campaign, error) {
	s.campaignCalls++
	s.lastQuery = q
	if s.campaignErr != nil {
		return nil, s.campaignErr
	}
	return s.campaigns, nil
}

func (s *fakeStore) FindPlacement(_ context.Context, id string) (*domain.Placement, error) {
	return s.placements[id], nil
}

func (s *fakeStore) FindTemplate(_ context.Context, id string) (*domain.Template, error) {
	return s.templates[id], nil
}

func (s *fakeStore) FindImage(_ context.Context, id string) (*domain.Image, error) {
	return s.images[id], nil
}

func (s *fakeStore) CreateEvent(_ context.Context, ev *domain.AnalyticsEvent) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *fakeStore) eventsOfType(eventType string) []*domain.AnalyticsEvent {
	var out []*domain.AnalyticsEvent
	for _, ev := range s.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// fakeCodec signs tokens as "tok-N" and records the claims behind each.
type fakeCodec struct {
	signed    []port.TokenClaims
	verifyErr error
}

func (c *fakeCodec) Sign(claims port.TokenClaims) (string, error) {
	c.signed = append(c.signed, claims)
	return fmt.Sprintf("tok-%d", len(c.signed)), nil
}

func (c *fakeCodec) Verify(token string) (port.TokenClaims, error) {
	if c.verifyErr != nil {
		return port.TokenClaims{}, c.verifyErr
	}
	var i int
	if _, err := fmt.Sscanf(token, "tok-%d", &i); err != nil || i < 1 || i > len(c.signed) {
		return port.TokenClaims{}, port.ErrInvalidToken
	}
	return c.signed[i-1], nil
}

// recordingRenderer captures the last render call and substitutes
// nothing.
type recordingRenderer struct {
	sources []string
	vars    []map[string]any
	out     string
	err     error
}

func (r *recordingRenderer) Render(source string, vars map[string]any) (string, error) {
	r.sources = append(r.sources, source)
	r.vars = append(r.vars, vars)
	if r.err != nil {
		return "", r.err
	}
	if r.out != "" {
		return r.out, nil
	}
	return source, nil
}

type fakeBots struct {
	classification domain.BotClassification
}

func (b fakeBots) Detect(string) domain.BotClassification { return b.classification }

// stubRand pins every draw the engine makes.
type stubRand struct {
	float   float64
	intn    int
	shuffle func(n int, swap func(i, j int))
}

func (r stubRand) Float64() float64 { return r.float }

func (r stubRand) Intn(int) int { return r.intn }

func (r stubRand) Shuffle(n int, swap func(i, j int)) {
	if r.shuffle != nil {
		r.shuffle(n, swap)
	}
}
