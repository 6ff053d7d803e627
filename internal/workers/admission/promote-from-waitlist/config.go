// internal/workers/admission/promote-from-waitlist/config.go
package promotefromwaitlist

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
