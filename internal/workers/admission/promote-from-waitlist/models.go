// internal/workers/admission/promote-from-waitlist/models.go
package promotefromwaitlist

import "admissions-workers/internal/models"

type Input struct {
	InstitutionID string `json:"institutionId"`
	CourseID      string `json:"courseId"`
}

type Output struct {
	// Promoted is false when no waiting application was eligible; the job
	// still completes so the process can continue.
	Promoted              bool                 `json:"promoted"`
	PromotedApplicationID string               `json:"promotedApplicationId,omitempty"`
	PromotedStudentID     string               `json:"promotedStudentId,omitempty"`
	Notification          *models.Notification `json:"notification,omitempty"`
}
