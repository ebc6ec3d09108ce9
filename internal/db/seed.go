package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// demoTemplate is the primary HTML source seeded for local runs.
const demoTemplate = `<div class="fortnight-ad">` +
	`<a href="{{ href }}"><img src="{{ creative.image.src }}" alt="{{ creative.title }}"></a>` +
	`<p>{{ creative.teaser }}</p>{{ beacon }}</div>`

// demoFallback is the fallback HTML source seeded for local runs.
const demoFallback = `<div class="fortnight-fallback"><a href="{{ url }}">{{ message }}</a>{{ beacon }}</div>`

// Seed inserts demo data into the delivery database: one template, two
// placements (one with a reserve), three ready campaigns with creatives
// and images, plus one paused and one ended campaign that must never
// deliver.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	templateID := "tpl-demo"
	_, err := pool.Exec(ctx, `INSERT INTO templates (id, name, html, fallback)
VALUES ($1,$2,$3,$4) ON CONFLICT DO NOTHING`,
		templateID, "Demo template", demoTemplate, demoFallback)
	if err != nil {
		return err
	}

	placements := []struct {
		id         string
		name       string
		reservePct *int
	}{
		{"plc-demo", "Demo placement", nil},
		{"plc-reserved", "Reserved placement", intPtr(25)},
	}
	for _, p := range placements {
		_, err = pool.Exec(ctx, `INSERT INTO placements (id, name, template_id, reserve_pct)
VALUES ($1,$2,$3,$4) ON CONFLICT DO NOTHING`, p.id, p.name, templateID, p.reservePct)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	campaigns := []struct {
		id     string
		ready  bool
		paused bool
		start  time.Time
		end    *time.Time
		kvs    []map[string]string
	}{
		{id: "cmp-spring", ready: true, start: now.AddDate(0, 0, -7)},
		{id: "cmp-evergreen", ready: true, start: now.AddDate(0, -1, 0)},
		{id: "cmp-section", ready: true, start: now.AddDate(0, 0, -1),
			kvs: []map[string]string{{"key": "sectionId", "value": "1234"}}},
		{id: "cmp-paused", ready: true, paused: true, start: now.AddDate(0, 0, -7)},
		{id: "cmp-ended", ready: true, start: now.AddDate(0, -2, 0), end: timePtr(now.AddDate(0, -1, 0))},
	}
	for i, c := range campaigns {
		kvs, _ := json.Marshal(c.kvs)
		if c.kvs == nil {
			kvs = []byte("[]")
		}
		_, err = pool.Exec(ctx, `INSERT INTO campaigns
    (id, name, url, deleted, ready, paused, start_date, end_date, placement_ids, kvs)
VALUES ($1,$2,$3,FALSE,$4,$5,$6,$7,$8,$9) ON CONFLICT DO NOTHING`,
			c.id, fmt.Sprintf("Demo campaign %d", i+1),
			fmt.Sprintf("https://advertiser.example.com/%s", c.id),
			c.ready, c.paused, c.start, c.end,
			[]string{"plc-demo", "plc-reserved"}, kvs)
		if err != nil {
			return err
		}
		for j := 1; j <= 2; j++ {
			imageID := fmt.Sprintf("img-%s-%d", c.id, j)
			_, err = pool.Exec(ctx, `INSERT INTO images (id, file_path)
VALUES ($1,$2) ON CONFLICT DO NOTHING`, imageID, fmt.Sprintf("creatives/%s/%d.jpg", c.id, j))
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx, `INSERT INTO creatives
    (id, campaign_id, title, teaser, active, image_id)
VALUES ($1,$2,$3,$4,TRUE,$5) ON CONFLICT DO NOTHING`,
				uuid.NewString(), c.id,
				fmt.Sprintf("Creative %d", j),
				fmt.Sprintf("Teaser copy %d for %s", j, c.id),
				imageID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }
