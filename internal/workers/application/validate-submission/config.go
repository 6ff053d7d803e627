// internal/workers/application/validate-submission/config.go
package validatesubmission

import "time"

type Config struct {
	Timeout time.Duration

	// MaxMotivationLength bounds the free-text motivation field.
	MaxMotivationLength int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             10 * time.Second,
		MaxMotivationLength: 2000,
	}
}
