package domain

import "time"

// KV is a single key/value targeting pair attached to campaign criteria.
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Criteria describes when and where a campaign may deliver. Start is
// required; End is optional and open-ended when nil.
type Criteria struct {
	Start        time.Time
	End          *time.Time
	PlacementIDs []string
	KVs          []KV
}

// Campaign represents an advertising campaign and its rotation pool of
// creatives. URL is the advertiser destination used for click redirects.
type Campaign struct {
	ID        string
	Name      string
	URL       string
	Deleted   bool
	Ready     bool
	Paused    bool
	Criteria  Criteria
	Creatives []Creative
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EligibleAt reports whether the campaign may deliver on the given
// placement at the given time. A campaign is eligible only while it is
// not deleted, ready, not paused, started, not yet ended (an absent end
// never expires) and targets the placement.
func (c Campaign) EligibleAt(placementID string, at time.Time) bool {
	if c.Deleted || !c.Ready || c.Paused {
		return false
	}
	if c.Criteria.Start.After(at) {
		return false
	}
	if c.Criteria.End != nil && !c.Criteria.End.After(at) {
		return false
	}
	for _, id := range c.Criteria.PlacementIDs {
		if id == placementID {
			return true
		}
	}
	return false
}

// MatchesKeyValues reports whether the campaign's key/value criteria
// match the provided request pairs. A request without pairs only matches
// campaigns that carry no kvs; otherwise every request pair must be
// present among the campaign's kvs.
func (c Campaign) MatchesKeyValues(kv map[string]string) bool {
	if len(kv) == 0 {
		return len(c.Criteria.KVs) == 0
	}
	for k, v := range kv {
		found := false
		for _, pair := range c.Criteria.KVs {
			if pair.Key == k && pair.Value == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
