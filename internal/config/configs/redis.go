package configs

import "time"

// Redis configures the placement/template lookup cache. An empty Addr
// disables caching entirely; lookups then always hit PostgreSQL.
type Redis struct {
	// Addr is the host:port of the Redis server, e.g. "localhost:6379".
	Addr string `env:"ADDRESS" envDefault:""`
	// DB selects the Redis logical database.
	DB int `env:"DB" envDefault:"0"`
	// TTL bounds how long placements and templates are cached.
	TTL time.Duration `env:"TTL" envDefault:"1m"`
}
