// internal/workers/admission/decline-offer/models.go
package declineoffer

import "admissions-workers/internal/models"

type Input struct {
	StudentID     string `json:"studentId"`
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`

	// PromotedApplicationID is set when the vacated slot was filled from
	// the waitlist in the same transaction.
	PromotedApplicationID string                `json:"promotedApplicationId,omitempty"`
	Notifications         []models.Notification `json:"notifications,omitempty"`
}
