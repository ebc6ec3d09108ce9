package configs

// Delivery configures the ad delivery engine.
type Delivery struct {
	// Secret signs the tracking and redirect tokens. Rotating it
	// invalidates every token issued before the rotation.
	Secret string `env:"SECRET" envDefault:"dont-keep-this-secret"`
	// ReservePct is the account-wide reserve percentage (0-100) applied
	// when a placement does not carry its own.
	ReservePct int `env:"RESERVE_PCT" envDefault:"0"`
	// KVTargeting enables key/value targeting in the campaign query.
	// The filter is policy-disabled by default; request pairs are still
	// normalized and recorded on events either way.
	KVTargeting bool `env:"KV_TARGETING" envDefault:"false"`
	// ImageBaseURL is the CDN origin creative images are served from.
	ImageBaseURL string `env:"IMAGE_BASE_URL" envDefault:"https://images.fortnight.app"`
}
