// internal/workers/matching/calculate-job-match/config.go
package calculatejobmatch

import "time"

type Config struct {
	Timeout time.Duration

	// CacheTTL bounds how long a computed match score is served from Redis
	// before being recomputed.
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}
