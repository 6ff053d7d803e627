// internal/workers/notification/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	AWSRegion    string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		EmailEnabled: true,
		SMSEnabled:   false,
		FromEmail:    "no-reply@admissions.example.com",
		AWSRegion:    "us-east-1",
	}
}
