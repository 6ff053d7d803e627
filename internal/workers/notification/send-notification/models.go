// internal/workers/notification/send-notification/models.go
package sendnotification

import "admissions-workers/internal/models"

type Input struct {
	Notification *models.Notification   `json:"notification"`
	RecipientID  string                 `json:"recipientId,omitempty"`
	Priority     string                 `json:"priority,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
