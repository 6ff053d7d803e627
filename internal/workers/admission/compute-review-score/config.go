// internal/workers/admission/compute-review-score/config.go
package computereviewscore

import "time"

// Config carries the band thresholds alongside the job timeout. Zero
// thresholds fall back to the state package defaults.
type Config struct {
	Timeout           time.Duration
	AdmitThreshold    int
	WaitlistThreshold int
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
