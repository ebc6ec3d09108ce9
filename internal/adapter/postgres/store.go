package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// Store implements port.DeliveryStore using pgxpool for PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	// imageBaseURL is the CDN origin images are served from; the stored
	// file path is appended to it when resolving a renderable source.
	imageBaseURL string
}

// NewStore returns a new store instance.
func NewStore(pool *pgxpool.Pool, imageBaseURL string) *Store {
	return &Store{pool: pool, imageBaseURL: strings.TrimSuffix(imageBaseURL, "/")}
}

// FindCampaigns returns the campaigns eligible for the query. The SQL
// makes the coarse cut by placement; status flags, the delivery window
// and the key/value policy are applied in process via the domain rules.
func (s *Store) FindCampaigns(ctx context.Context, q port.CampaignQuery) ([]domain.Campaign, error) {
	query := `
        SELECT id, name, url, deleted, ready, paused,
               start_date, end_date, placement_ids, kvs,
               created_at, updated_at
        FROM campaigns
        WHERE deleted = FALSE
          AND $1 = ANY(placement_ids)`
	rows, err := s.pool.Query(ctx, query, q.PlacementID)
	if err != nil {
		return nil, err
	}
	fetched, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var (
			c      domain.Campaign
			end    *time.Time
			kvsRaw []byte
		)
		err := row.Scan(
			&c.ID,
			&c.Name,
			&c.URL,
			&c.Deleted,
			&c.Ready,
			&c.Paused,
			&c.Criteria.Start,
			&end,
			&c.Criteria.PlacementIDs,
			&kvsRaw,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return c, err
		}
		c.Criteria.End = end
		if len(kvsRaw) > 0 {
			if err = json.Unmarshal(kvsRaw, &c.Criteria.KVs); err != nil {
				return c, err
			}
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	campaigns := make([]domain.Campaign, 0, len(fetched))
	for _, c := range fetched {
		if !c.EligibleAt(q.PlacementID, q.StartDate) {
			continue
		}
		if q.MatchKeyValues && !c.MatchesKeyValues(q.KeyValues) {
			continue
		}
		campaigns = append(campaigns, c)
	}
	if len(campaigns) == 0 {
		return campaigns, nil
	}
	if err = s.attachCreatives(ctx, campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// attachCreatives loads the creative pools for the given campaigns.
func (s *Store) attachCreatives(ctx context.Context, campaigns []domain.Campaign) error {
	ids := make([]string, len(campaigns))
	index := make(map[string]int, len(campaigns))
	for i, c := range campaigns {
		ids[i] = c.ID
		index[c.ID] = i
	}
	rows, err := s.pool.Query(ctx, `
        SELECT id, campaign_id, title, teaser, active, COALESCE(image_id, ''),
               created_at, updated_at
        FROM creatives
        WHERE campaign_id = ANY($1)
        ORDER BY created_at`, ids)
	if err != nil {
		return err
	}
	creatives, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Creative, error) {
		var cr domain.Creative
		err := row.Scan(&cr.ID, &cr.CampaignID, &cr.Title, &cr.Teaser, &cr.Active, &cr.ImageID, &cr.CreatedAt, &cr.UpdatedAt)
		return cr, err
	})
	if err != nil {
		return err
	}
	for _, cr := range creatives {
		if i, ok := index[cr.CampaignID]; ok {
			campaigns[i].Creatives = append(campaigns[i].Creatives, cr)
		}
	}
	return nil
}

// FindPlacement returns a placement by id.
func (s *Store) FindPlacement(ctx context.Context, id string) (*domain.Placement, error) {
	var p domain.Placement
	err := s.pool.QueryRow(ctx, `
        SELECT id, name, template_id, reserve_pct, created_at, updated_at
        FROM placements WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.TemplateID, &p.ReservePct, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindTemplate returns a template by id.
func (s *Store) FindTemplate(ctx context.Context, id string) (*domain.Template, error) {
	var t domain.Template
	err := s.pool.QueryRow(ctx, `
        SELECT id, name, html, COALESCE(fallback, ''), created_at, updated_at
        FROM templates WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.HTML, &t.Fallback, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindImage returns an image by id with its renderable source resolved
// against the configured CDN origin.
func (s *Store) FindImage(ctx context.Context, id string) (*domain.Image, error) {
	var img domain.Image
	err := s.pool.QueryRow(ctx, `SELECT id, file_path FROM images WHERE id = $1`, id).
		Scan(&img.ID, &img.FilePath)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	img.Src = s.imageBaseURL + "/" + strings.TrimPrefix(img.FilePath, "/")
	return &img, nil
}

// CreateEvent appends one analytics event. A repeated beacon fire for
// the same uuid and type is a no-op rather than an error.
func (s *Store) CreateEvent(ctx context.Context, ev *domain.AnalyticsEvent) error {
	kv, err := json.Marshal(ev.KV)
	if err != nil {
		return err
	}
	var campaignID *string
	if ev.CampaignID != "" {
		campaignID = &ev.CampaignID
	}
	if ev.Date.IsZero() {
		ev.Date = time.Now().UTC()
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO analytics_events
            (type, uuid, campaign_id, placement_id, occurred_at,
             bot_detected, bot_value, user_agent, kv, ip)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (uuid, type) DO NOTHING`,
		ev.Type, ev.UUID, campaignID, ev.PlacementID, ev.Date,
		ev.Bot.Detected, ev.Bot.Value, ev.UserAgent, kv, ev.IP)
	return err
}

var _ port.DeliveryStore = (*Store)(nil)
