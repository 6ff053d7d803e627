// internal/workers/admission/select-final-admission/models.go
package selectfinaladmission

import "admissions-workers/internal/models"

type Input struct {
	StudentID     string `json:"studentId"`
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	ConfirmedApplicationID  string                `json:"confirmedApplicationId"`
	DeclinedApplicationIDs  []string              `json:"declinedApplicationIds"`
	PromotedApplicationIDs  []string              `json:"promotedApplicationIds"`
	Notifications           []models.Notification `json:"notifications,omitempty"`
	FinalAdmissionConfirmed bool                  `json:"finalAdmissionConfirmed"`
}
