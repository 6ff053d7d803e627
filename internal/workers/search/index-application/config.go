// internal/workers/search/index-application/config.go
package indexapplication

import "time"

type Config struct {
	Timeout time.Duration

	// Index is the Elasticsearch index applications are written to.
	Index string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
		Index:   "applications",
	}
}
