// Package rediscache adds a read-through Redis cache in front of the
// placement and template lookups, the two reads on every delivery hot
// path. Campaign queries, image lookups and event writes pass through
// untouched.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fortnight-ads/internal/core/domain"
	"fortnight-ads/internal/core/port"
)

// LookupCache wraps a DeliveryStore with cached placement and template
// reads. Cache failures degrade to the inner store; a miss or an error
// never fails a delivery.
type LookupCache struct {
	port.DeliveryStore

	client *redis.Client
	ttl    time.Duration
}

// New wraps the store with a lookup cache.
func New(store port.DeliveryStore, client *redis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{DeliveryStore: store, client: client, ttl: ttl}
}

// FindPlacement returns a placement by id, served from cache when warm.
func (c *LookupCache) FindPlacement(ctx context.Context, id string) (*domain.Placement, error) {
	var placement domain.Placement
	if c.get(ctx, "placement:"+id, &placement) {
		return &placement, nil
	}
	found, err := c.DeliveryStore.FindPlacement(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	c.set(ctx, "placement:"+id, found)
	return found, nil
}

// FindTemplate returns a template by id, served from cache when warm.
func (c *LookupCache) FindTemplate(ctx context.Context, id string) (*domain.Template, error) {
	var template domain.Template
	if c.get(ctx, "template:"+id, &template) {
		return &template, nil
	}
	found, err := c.DeliveryStore.FindTemplate(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	c.set(ctx, "template:"+id, found)
	return found, nil
}

func (c *LookupCache) get(ctx context.Context, key string, out any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *LookupCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

var _ port.DeliveryStore = (*LookupCache)(nil)
