// internal/workers/application/submit-course-application/models.go
package submitcourseapplication

import (
	"admissions-workers/internal/models"
	"admissions-workers/internal/scoring"
)

type Input struct {
	StudentID     string                   `json:"studentId"`
	InstitutionID string                   `json:"institutionId"`
	CourseID      string                   `json:"courseId"`
	Motivation    string                   `json:"motivation"`
	Profile       *models.CandidateProfile `json:"candidateProfile"`
	Course        *models.Course           `json:"course"`
}

type Output struct {
	ApplicationID      string                  `json:"applicationId"`
	ApplicationStatus  string                  `json:"applicationStatus"`
	QualificationScore int                     `json:"qualificationScore"`
	ScoreBreakdown     scoring.CourseBreakdown `json:"scoreBreakdown"`
	CreatedAt          string                  `json:"createdAt"`
}
