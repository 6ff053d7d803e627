// internal/workers/application/submit-job-application/models.go
package submitjobapplication

import (
	"admissions-workers/internal/models"
	"admissions-workers/internal/scoring"
)

type Input struct {
	StudentID   string                   `json:"studentId"`
	JobID       string                   `json:"jobId"`
	FieldOfWork string                   `json:"fieldOfWork"`
	Profile     *models.CandidateProfile `json:"candidateProfile"`
	Job         *models.Job              `json:"job"`
}

type Output struct {
	ApplicationID      string                 `json:"applicationId"`
	ApplicationStatus  string                 `json:"applicationStatus"`
	QualificationScore int                    `json:"qualificationScore"`
	ScoreBreakdown     scoring.MatchBreakdown `json:"scoreBreakdown"`
	CreatedAt          string                 `json:"createdAt"`
}
