// internal/workers/matching/calculate-job-match/models.go
package calculatejobmatch

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
	MatchScore     int                    `json:"matchScore"`
	ScoreBreakdown scoring.MatchBreakdown `json:"scoreBreakdown"`
	FromCache      bool                   `json:"fromCache"`
}

// cacheEntry is the JSON payload stored in Redis per (student, job) pair.
type cacheEntry struct {
	MatchScore     int                    `json:"matchScore"`
	ScoreBreakdown scoring.MatchBreakdown `json:"scoreBreakdown"`
}
