// internal/models/notification.go
package models

// Notification types emitted by the allocation engine.
const (
	NotificationAdmissionPromoted = "admission_promoted"
	NotificationStudentDeclined   = "student_declined"
)

// Notification is the record handed to the delivery component and persisted
// with read=false.
type Notification struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
	Read    bool   `json:"read"`
	Channel string `json:"channel,omitempty"` // "email", "sms"
	Status  string `json:"status,omitempty"`  // "sent", "failed", "disabled"
	SentAt  string `json:"sentAt,omitempty"`
	Created string `json:"createdAt,omitempty"`
}
